package main

import (
	"net/http"

	"github.com/allanweber/trading-journal-entry-sub000/models"
	"github.com/allanweber/trading-journal-entry-sub000/workflow"
	"github.com/gin-gonic/gin"
)

func listEntriesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := requireUserId(c); !ok {
			return
		}
		id, ok := pathId(c)
		if !ok {
			return
		}
		if _, err := models.GetJournal(c.Request.Context(), id); err != nil {
			abortWithError(c, err)
			return
		}
		entries, err := models.ListJournalEntries(c.Request.Context(), id)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, entries)
	}
}

func createTradeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := requireUserId(c); !ok {
			return
		}
		id, ok := pathId(c)
		if !ok {
			return
		}
		var input models.NewTrade
		if err := c.ShouldBindJSON(&input); err != nil {
			abortWithError(c, err)
			return
		}
		entry, err := workflow.CreateTradeEntry(c.Request.Context(), id, &input)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusCreated, entry)
	}
}

func createTransactionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := requireUserId(c); !ok {
			return
		}
		id, ok := pathId(c)
		if !ok {
			return
		}
		var input models.NewTransaction
		if err := c.ShouldBindJSON(&input); err != nil {
			abortWithError(c, err)
			return
		}
		entry, err := workflow.CreateTransactionEntry(c.Request.Context(), id, &input)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusCreated, entry)
	}
}

func updateTradeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := requireUserId(c); !ok {
			return
		}
		id, ok := pathId(c)
		if !ok {
			return
		}
		var input models.NewTrade
		if err := c.ShouldBindJSON(&input); err != nil {
			abortWithError(c, err)
			return
		}
		entry, err := workflow.UpdateTradeEntry(c.Request.Context(), id, &input)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, entry)
	}
}

func closeTradeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := requireUserId(c); !ok {
			return
		}
		id, ok := pathId(c)
		if !ok {
			return
		}
		var input models.CloseTrade
		if err := c.ShouldBindJSON(&input); err != nil {
			abortWithError(c, err)
			return
		}
		entry, err := workflow.CloseTradeEntry(c.Request.Context(), id, &input)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, entry)
	}
}

func deleteEntryHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := requireUserId(c); !ok {
			return
		}
		id, ok := pathId(c)
		if !ok {
			return
		}
		if err := workflow.DeleteEntry(c.Request.Context(), id); err != nil {
			abortWithError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
