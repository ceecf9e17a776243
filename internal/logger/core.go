package logger

import (
	"go.uber.org/zap/zapcore"
)

// MongoCore tees log entries into the async Mongo writer while the
// wrapped core keeps printing to the console.
type MongoCore struct {
	zapcore.Core
	writer *LogWriter
}

func NewMongoCore(base zapcore.Core, writer *LogWriter) zapcore.Core {
	return &MongoCore{Core: base, writer: writer}
}

func (c *MongoCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	var ip string
	for _, f := range fields {
		if f.Key == "ip" {
			ip = f.String
		}
	}

	c.writer.Add(Entry{
		Level:   entry.Level,
		Message: entry.Message,
		IP:      ip,
		Caller:  entry.Caller.Function,
	})

	return c.Core.Write(entry, fields)
}

func (c *MongoCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}
