package logger

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// the maximum number of entries kept in the central log. older entries are
// dropped
const maxEntries = 256

// Entry is a single log entry. Repeated entries are those that have the same
// tag and detail as the entry before them
type Entry struct {
	Tag      string
	Detail   string
	Repeated int
}

func (e Entry) String() string {
	if e.Repeated > 0 {
		return fmt.Sprintf("%s: %s (repeat x%d)", e.Tag, e.Detail, e.Repeated+1)
	}
	return fmt.Sprintf("%s: %s", e.Tag, e.Detail)
}

type logger struct {
	crit    sync.Mutex
	entries []Entry

	// entries are also written to echo as they are logged
	echo io.Writer
}

var central = &logger{
	entries: make([]Entry, 0, maxEntries),
}

func (l *logger) log(tag string, detail string) {
	l.crit.Lock()
	defer l.crit.Unlock()

	// fold repeated entry into the previous entry
	if len(l.entries) > 0 {
		last := &l.entries[len(l.entries)-1]
		if last.Tag == tag && last.Detail == detail {
			last.Repeated++
			return
		}
	}

	e := Entry{Tag: tag, Detail: detail}
	if len(l.entries) >= maxEntries {
		l.entries = l.entries[1:]
	}
	l.entries = append(l.entries, e)

	if l.echo != nil {
		io.WriteString(l.echo, e.String())
		io.WriteString(l.echo, "\n")
	}
}

// Log adds an entry to the central log. The detail argument can be a string,
// an error or a fmt.Stringer. Any other type is formatted with the %v verb
func Log(perm Permission, tag string, detail any) {
	if perm == nil || !perm.AllowLogging() {
		return
	}

	var s string
	switch d := detail.(type) {
	case string:
		s = d
	case error:
		s = d.Error()
	case fmt.Stringer:
		s = d.String()
	default:
		s = fmt.Sprintf("%v", d)
	}

	// multiline details are logged as separate entries
	for _, ln := range strings.Split(strings.TrimSpace(s), "\n") {
		central.log(tag, ln)
	}
}

// Logf adds a formatted entry to the central log
func Logf(perm Permission, tag string, format string, args ...any) {
	if perm == nil || !perm.AllowLogging() {
		return
	}
	Log(perm, tag, fmt.Sprintf(format, args...))
}

// Tail writes the most recent n entries to w. A value of n less than zero
// writes all entries
func Tail(w io.Writer, n int) {
	central.crit.Lock()
	defer central.crit.Unlock()

	if n < 0 || n > len(central.entries) {
		n = len(central.entries)
	}
	for _, e := range central.entries[len(central.entries)-n:] {
		io.WriteString(w, e.String())
		io.WriteString(w, "\n")
	}
}

// SetEcho sets the writer to which new entries are echoed. A nil writer
// disables echoing. If recent is true then existing entries are written to w
// immediately
func SetEcho(w io.Writer, recent bool) {
	central.crit.Lock()
	central.echo = w
	central.crit.Unlock()

	if w != nil && recent {
		Tail(w, -1)
	}
}

// Clear removes all entries from the central log
func Clear() {
	central.crit.Lock()
	defer central.crit.Unlock()
	central.entries = central.entries[:0]
}

// Entries returns a copy of the entries in the central log
func Entries() []Entry {
	central.crit.Lock()
	defer central.crit.Unlock()
	e := make([]Entry, len(central.entries))
	copy(e, central.entries)
	return e
}
