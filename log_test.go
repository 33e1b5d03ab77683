package gestaltwerk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogAddAndLength(t *testing.T) {
	l := NewLog(4)
	l.Add("cascade", "warn", "dropped %s", "width")
	l.Add("layout", "info", "laid out")
	assert.Equal(t, 2, l.Length())
}

func TestLogRingBufferWrapsAndKeepsMostRecent(t *testing.T) {
	l := NewLog(2)
	l.Add("a", "info", "one")
	l.Add("a", "info", "two")
	l.Add("a", "info", "three")

	assert.Equal(t, 2, l.Length(), "length must stay capped at the ring size")
	assert.Equal(t, "three", l.Str(0, 3), "row 0 is the most recently added entry")
	assert.Equal(t, "two", l.Str(1, 3), "the oldest entry must have been evicted")
}

func TestLogStrColumnIndices(t *testing.T) {
	l := NewLog(4)
	l.Add("mysource", "warn", "hello %d", 7)

	assert.Equal(t, "warn", l.Str(0, 1))
	assert.Equal(t, "mysource", l.Str(0, 2))
	assert.Equal(t, "hello 7", l.Str(0, 3))
}

func TestLogIterYieldsOldestFirst(t *testing.T) {
	l := NewLog(3)
	l.Add("a", "info", "one")
	l.Add("a", "info", "two")

	var messages []string
	for entry := range l.Iter() {
		messages = append(messages, entry.Message)
	}
	assert.Equal(t, []string{"one", "two"}, messages)
}

func TestLogColumnsDescribeFourFields(t *testing.T) {
	l := NewLog(1)
	cols := l.Columns()
	assert.Len(t, cols, 4)
	assert.Equal(t, "Time", cols[0].Header)
	assert.Equal(t, "Message", cols[3].Header)
}

func TestSQLiteSinkOpenCreatesSchemaAndAcceptsWrites(t *testing.T) {
	sink, err := OpenSQLiteSink(":memory:")
	assert.Nil(t, err)
	defer sink.Close()

	l := NewLog(4)
	l.AttachSink(sink)
	assert.NotPanics(t, func() { l.Add("cascade", "warn", "dropped property") })
}

func TestSQLiteSinkNilSinkWriteIsNoop(t *testing.T) {
	var sink *SQLiteSink
	assert.NotPanics(t, func() { sink.write(LogEntry{Message: "x"}) })
	assert.Nil(t, sink.Close())
}
