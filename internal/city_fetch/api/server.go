package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"city-fetch/internal/city_fetch/helper"
	"city-fetch/internal/city_fetch/model"
)

type Server struct {
	Stores *helper.Stores
}

func (s *Server) Router() *gin.Engine {
	r := gin.Default()
	r.GET("/sources", s.listSources)
	r.GET("/meetings", s.listMeetings) // ?spider=&status=&classification=&after=YYYY-MM-DD&page=1&limit=20
	return r
}

func (s *Server) listSources(c *gin.Context) {
	cur, err := s.Stores.Sources.Find(c, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer func(cur *mongo.Cursor, ctx context.Context) {
		_ = cur.Close(ctx)
	}(cur, c)

	var out []model.SourceInfo
	for cur.Next(c) {
		var src model.SourceInfo
		_ = cur.Decode(&src)
		out = append(out, src)
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}

func (s *Server) listMeetings(c *gin.Context) {
	filter := bson.M{}
	if v := c.Query("spider"); v != "" {
		filter["spider"] = v
	}
	if v := c.Query("status"); v != "" {
		filter["status"] = v
	}
	if v := c.Query("classification"); v != "" {
		filter["classification"] = v
	}
	if v := c.Query("after"); v != "" {
		after, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "after must be YYYY-MM-DD"})
			return
		}
		filter["start"] = bson.M{"$gte": after}
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 200 {
		limit = 20
	}

	total, err := s.Stores.Meetings.CountDocuments(c, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "start", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cur, err := s.Stores.Meetings.Find(c, filter, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer func(cur *mongo.Cursor, ctx context.Context) {
		_ = cur.Close(ctx)
	}(cur, c)

	var meetings []model.Meeting
	for cur.Next(c) {
		var m model.Meeting
		_ = cur.Decode(&m)
		meetings = append(meetings, m)
	}

	c.JSON(http.StatusOK, gin.H{
		"total": total,
		"data":  meetings,
		"page":  page,
		"limit": limit,
	})
}
