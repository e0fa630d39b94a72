package main

import (
	"net/http"
	"strconv"

	"github.com/allanweber/trading-journal-entry-sub000/models"
	"github.com/allanweber/trading-journal-entry-sub000/workflow"
	"github.com/gin-gonic/gin"
)

func pathId(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func createJournalHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := requireUserId(c); !ok {
			return
		}
		var input models.NewJournal
		if err := c.ShouldBindJSON(&input); err != nil {
			abortWithError(c, err)
			return
		}
		journal, err := models.CreateJournal(c.Request.Context(), &input)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusCreated, journal)
	}
}

func listJournalsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := requireUserId(c); !ok {
			return
		}
		journals, err := models.ListJournals(c.Request.Context())
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, journals)
	}
}

func getJournalHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := requireUserId(c); !ok {
			return
		}
		id, ok := pathId(c)
		if !ok {
			return
		}
		journal, err := models.GetJournal(c.Request.Context(), id)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, journal)
	}
}

func deleteJournalHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := requireUserId(c); !ok {
			return
		}
		id, ok := pathId(c)
		if !ok {
			return
		}
		if err := models.DeleteJournal(c.Request.Context(), id); err != nil {
			abortWithError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func getBalanceHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := requireUserId(c); !ok {
			return
		}
		id, ok := pathId(c)
		if !ok {
			return
		}
		balance, err := workflow.GetJournalBalance(c.Request.Context(), id)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, balance)
	}
}

func recomputeBalanceHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := requireUserId(c); !ok {
			return
		}
		id, ok := pathId(c)
		if !ok {
			return
		}
		ctx, span := tracer.Start(c.Request.Context(), "journal.balance.recompute")
		defer span.End()

		// Ownership check before the recompute command.
		if _, err := models.GetJournal(ctx, id); err != nil {
			abortWithError(c, err)
			return
		}
		balance, err := workflow.RecomputeJournalBalance(ctx, id)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, balance)
	}
}

func refreshExposureHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := requireUserId(c); !ok {
			return
		}
		id, ok := pathId(c)
		if !ok {
			return
		}
		ctx, span := tracer.Start(c.Request.Context(), "journal.balance.exposure")
		defer span.End()

		if _, err := models.GetJournal(ctx, id); err != nil {
			abortWithError(c, err)
			return
		}
		balance, err := workflow.RefreshJournalExposure(ctx, id)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, balance)
	}
}
