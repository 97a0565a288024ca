package dashboard

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// LogLine is one line of container output
type LogLine struct {
	Raw       string
	Timestamp time.Time
	Text      string

	// Structured is set when Text embeds a JSON object with a level
	Structured bool
	Level      string
	Message    string
}

var (
	levelKeys   = []string{"level", "lvl", "severity"}
	messageKeys = []string{"message", "msg"}
)

// ParseLogLine splits off a leading docker timestamp and decodes an embedded
// JSON log record when one is present
func ParseLogLine(raw string) LogLine {
	line := LogLine{Raw: raw, Text: strings.TrimRight(raw, "\r\n")}

	// Docker timestamp format: 2024-01-15T10:30:45.123456789Z message text
	if end := strings.IndexByte(line.Text, ' '); end > 0 {
		if ts, err := time.Parse(time.RFC3339Nano, line.Text[:end]); err == nil {
			line.Timestamp = ts
			line.Text = line.Text[end+1:]
		}
	}

	start := strings.IndexByte(line.Text, '{')
	end := strings.LastIndexByte(line.Text, '}')
	if start < 0 || end <= start {
		return line
	}

	var record map[string]interface{}
	if err := json.Unmarshal([]byte(line.Text[start:end+1]), &record); err != nil {
		return line
	}
	level, ok := firstString(record, levelKeys)
	if !ok {
		return line
	}
	message, ok := firstString(record, messageKeys)
	if !ok {
		return line
	}

	line.Structured = true
	line.Level = strings.ToUpper(level)
	line.Message = message
	return line
}

func firstString(record map[string]interface{}, keys []string) (string, bool) {
	for _, k := range keys {
		v, ok := record[k]
		if !ok || v == nil {
			continue
		}
		if s, ok := v.(string); ok {
			return s, true
		}
		return fmt.Sprint(v), true
	}
	return "", false
}

// Display renders the line for a log view
func (l LogLine) Display() string {
	if l.Structured {
		return l.Level + " " + l.Message
	}
	return l.Text
}

// SplitSnapshot splits a log snapshot into lines
func SplitSnapshot(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// DownloadFilename names a saved log file after the container and the time
func DownloadFilename(containerID string, now time.Time) string {
	stamp := strings.ReplaceAll(now.UTC().Format(time.RFC3339), ":", "-")
	return fmt.Sprintf("%s-logs-%s.txt", containerID, stamp)
}

// WriteLog writes the raw lines, one per line
func WriteLog(w io.Writer, lines []string) error {
	bw := bufio.NewWriter(w)
	for _, l := range lines {
		if _, err := bw.WriteString(strings.TrimRight(l, "\r\n")); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
