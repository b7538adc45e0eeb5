package subtitle

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// EncodeSRT renders segments as SRT text. Each block is four lines: the
// index, a timing line, the trimmed text, and a blank separator. The result
// carries no leading or trailing blank lines and ends with exactly one
// newline; an empty segment list yields just the newline.
func EncodeSRT(segments []Segment) string {
	var lines []string
	for _, seg := range segments {
		lines = append(lines, strconv.Itoa(seg.Index))
		lines = append(lines, fmt.Sprintf("%s --> %s",
			FormatTimestamp(seg.Start),
			FormatTimestamp(seg.End)))
		lines = append(lines, strings.TrimSpace(seg.Text))
		lines = append(lines, "")
	}
	return strings.TrimSpace(strings.Join(lines, "\n")) + "\n"
}

// DecodeSRT parses SRT text into segments in document order. Parsing is
// lenient: blocks that do not follow the index/timing/text pattern are
// skipped rather than reported as errors, and the count of skipped blocks
// is returned for diagnostics. Blocks may be separated by one or more blank
// lines, and the final block may omit its trailing blank line.
func DecodeSRT(text string) ([]Segment, int) {
	text = strings.TrimPrefix(text, "\ufeff")

	var segments []Segment
	skipped := 0

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var block []string
	flush := func() {
		if len(block) == 0 {
			return
		}
		if seg, ok := parseBlock(block); ok {
			segments = append(segments, seg)
		} else {
			skipped++
		}
		block = nil
	}

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		block = append(block, line)
	}
	flush()

	return segments, skipped
}

func parseBlock(lines []string) (Segment, bool) {
	if len(lines) < 3 {
		return Segment{}, false
	}

	index, err := strconv.Atoi(strings.TrimSpace(lines[0]))
	if err != nil {
		return Segment{}, false
	}

	before, after, found := strings.Cut(lines[1], "-->")
	if !found {
		return Segment{}, false
	}
	start, err := ParseTimestamp(strings.TrimSpace(before))
	if err != nil {
		return Segment{}, false
	}
	end, err := ParseTimestamp(strings.TrimSpace(after))
	if err != nil {
		return Segment{}, false
	}

	text := strings.TrimSpace(strings.Join(lines[2:], "\n"))
	if text == "" {
		return Segment{}, false
	}

	return Segment{Index: index, Start: start, End: end, Text: text}, true
}

// FormatTimestamp renders a duration in the SRT timing format
// HH:MM:SS,mmm with hours zero-padded to at least two digits.
func FormatTimestamp(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	millis := int(d.Milliseconds()) % 1000

	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, seconds, millis)
}

// ParseTimestamp parses an SRT timestamp of the form HH:MM:SS,mmm.
func ParseTimestamp(s string) (time.Duration, error) {
	clock, millisPart, found := strings.Cut(s, ",")
	if !found {
		return 0, fmt.Errorf("invalid SRT timestamp: %q", s)
	}

	fields := strings.Split(clock, ":")
	if len(fields) != 3 {
		return 0, fmt.Errorf("invalid SRT timestamp: %q", s)
	}

	hours, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, fmt.Errorf("invalid hours in timestamp %q: %w", s, err)
	}
	minutes, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, fmt.Errorf("invalid minutes in timestamp %q: %w", s, err)
	}
	seconds, err := strconv.Atoi(fields[2])
	if err != nil {
		return 0, fmt.Errorf("invalid seconds in timestamp %q: %w", s, err)
	}
	millis, err := strconv.Atoi(millisPart)
	if err != nil {
		return 0, fmt.Errorf("invalid milliseconds in timestamp %q: %w", s, err)
	}

	return time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(millis)*time.Millisecond, nil
}
