package logger

import (
	"context"
	"fmt"
	"time"

	"go-hr/internal/config"
	"go-hr/internal/database"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap/zapcore"
)

// Entry is one log line on its way to the logs collection.
type Entry struct {
	Level   zapcore.Level
	Message string
	IP      string
	Caller  string
}

type logRecord struct {
	AppID     string    `bson:"app_id"`
	Level     string    `bson:"level"`
	Message   string    `bson:"message"`
	IP        string    `bson:"ip,omitempty"`
	Caller    string    `bson:"caller,omitempty"`
	CreatedAt time.Time `bson:"created_at"`
}

// LogWriter drains a buffered channel into Mongo on a background
// goroutine so logging never blocks request handling.
type LogWriter struct {
	coll    *mongo.Collection
	entries chan Entry
	appID   string
}

func NewLogWriter(mongodb *database.MongodbDB, cfg *config.Config) *LogWriter {
	w := &LogWriter{
		coll:    mongodb.DB.Collection("logs"),
		entries: make(chan Entry, 1000),
		appID:   cfg.AppId,
	}
	go w.drain()
	return w
}

// Add enqueues the entry; when the buffer is full the entry is dropped
// rather than stalling the caller.
func (w *LogWriter) Add(entry Entry) {
	select {
	case w.entries <- entry:
	default:
		fmt.Println("log channel full, dropping:", entry.Message)
	}
}

func (w *LogWriter) drain() {
	for entry := range w.entries {
		record := logRecord{
			AppID:     w.appID,
			Level:     entry.Level.String(),
			Message:   entry.Message,
			IP:        entry.IP,
			Caller:    entry.Caller,
			CreatedAt: time.Now().UTC(),
		}
		// Insert failures are ignored; the console core already printed.
		w.coll.InsertOne(context.Background(), record)
	}
}
