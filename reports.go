package main

import (
	"net/http"
	"strconv"

	"github.com/allanweber/trading-journal-entry-sub000/models"
	"github.com/allanweber/trading-journal-entry-sub000/models/reports"
	"github.com/gin-gonic/gin"
)

func queryInt(c *gin.Context, name string, def int) int {
	v := c.Query(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func queryDate(c *gin.Context, name string) (*models.MyDateString, bool) {
	v := c.Query(name)
	if v == "" {
		return nil, true
	}
	var date models.MyDateString
	if err := date.Parse(v); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + ": " + err.Error()})
		return nil, false
	}
	return &date, true
}

func periodAggregateHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := requireUserId(c); !ok {
			return
		}
		id, ok := pathId(c)
		if !ok {
			return
		}
		ctx, span := tracer.Start(c.Request.Context(), "report.periods")
		defer span.End()

		if _, err := models.GetJournal(ctx, id); err != nil {
			abortWithError(c, err)
			return
		}
		unit, err := reports.ParseAggregateUnit(c.DefaultQuery("unit", "DAY"))
		if err != nil {
			abortWithError(c, err)
			return
		}
		page := queryInt(c, "page", 0)
		size := queryInt(c, "size", reports.DefaultPageSize)

		response, err := reports.GetPeriodAggregate(ctx, id, unit, page, size)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, response)
	}
}

func periodExportHandler() gin.HandlerFunc {
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
		unit, err := reports.ParseAggregateUnit(c.DefaultQuery("unit", "DAY"))
		if err != nil {
			abortWithError(c, err)
			return
		}

		f, err := reports.ExportPeriodAggregate(c.Request.Context(), id, unit)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", "attachment; filename=periods.xlsx")
		if err := f.Write(c.Writer); err != nil {
			c.Status(http.StatusInternalServerError)
		}
	}
}

func tradesByDayHandler() gin.HandlerFunc {
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
		from, ok := queryDate(c, "from")
		if !ok {
			return
		}
		until, ok := queryDate(c, "until")
		if !ok {
			return
		}

		groups, err := reports.GetTradesByDay(c.Request.Context(), id, from, until)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, groups)
	}
}
