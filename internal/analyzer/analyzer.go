package analyzer

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mcncl/jsoncore/internal/value"
)

// String and number shapes worth reporting
const (
	FormatUUID          = "uuid"
	FormatRFC3339       = "rfc3339"
	FormatISO8601       = "iso8601"
	FormatDate          = "date"
	FormatDateTime      = "datetime"
	FormatUnixTimestamp = "unix_seconds"
	FormatUnixMilli     = "unix_millis"
)

// Regex patterns for special formats
var (
	uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

	// Time format patterns (ordered by specificity - most specific first)
	rfc3339Regex       = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?(Z|[+-]\d{2}:\d{2})$`)            // 2006-01-02T15:04:05Z
	iso8601Regex       = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?([+-]\d{2}:\d{2}|Z|[+-]\d{4})?$`) // ISO8601 variants
	dateOnlyRegex      = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)                                                         // 2006-01-02
	dateTimeRegex      = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}(\.\d+)?$`)                               // 2006-01-02 15:04:05
	unixTimestampRegex = regexp.MustCompile(`^1[0-9]{9}$`)                                                                 // Unix timestamp (seconds since 1970)
	unixMilliRegex     = regexp.MustCompile(`^1[0-9]{12}$`)                                                                // Unix timestamp in milliseconds
)

// Stats summarizes the shape of a document
type Stats struct {
	// Kinds counts every value in the tree by kind, containers included
	Kinds map[value.Kind]int
	// MaxDepth is the deepest container nesting; a scalar document has depth 0
	MaxDepth int
	// Members is the total number of object members
	Members int
	// Elements is the total number of array elements
	Elements int
	// LongestString is the byte length of the longest string value or key
	LongestString int
	// Formats counts strings and integers that look like identifiers or timestamps
	Formats map[string]int
}

// Analyze walks v and collects its Stats
func Analyze(v value.Value) Stats {
	stats := Stats{
		Kinds:   make(map[value.Kind]int),
		Formats: make(map[string]int),
	}
	stats.walk(v, 0)
	return stats
}

func (s *Stats) walk(v value.Value, depth int) {
	s.Kinds[v.Kind()]++

	switch v.Kind() {
	case value.KindString:
		str, _ := v.Str()
		s.noteString(str)
		if f := detectStringFormat(str); f != "" {
			s.Formats[f]++
		}

	case value.KindInteger:
		i, _ := v.Int()
		if f := detectIntegerFormat(i); f != "" {
			s.Formats[f]++
		}

	case value.KindArray:
		depth++
		s.noteDepth(depth)
		items, _ := v.Array()
		s.Elements += len(items)
		for _, item := range items {
			s.walk(item, depth)
		}

	case value.KindObject:
		depth++
		s.noteDepth(depth)
		obj, _ := v.Object()
		s.Members += obj.Len()
		for _, m := range obj.Members() {
			s.noteString(m.Key)
			s.walk(m.Value, depth)
		}
	}
}

func (s *Stats) noteDepth(depth int) {
	if depth > s.MaxDepth {
		s.MaxDepth = depth
	}
}

func (s *Stats) noteString(str string) {
	if len(str) > s.LongestString {
		s.LongestString = len(str)
	}
}

func detectStringFormat(str string) string {
	switch {
	case uuidRegex.MatchString(str):
		return FormatUUID
	case rfc3339Regex.MatchString(str):
		return FormatRFC3339
	case iso8601Regex.MatchString(str):
		return FormatISO8601
	case dateOnlyRegex.MatchString(str):
		return FormatDate
	case dateTimeRegex.MatchString(str):
		return FormatDateTime
	default:
		return ""
	}
}

func detectIntegerFormat(i int64) string {
	digits := strconv.FormatInt(i, 10)
	switch {
	case unixTimestampRegex.MatchString(digits):
		return FormatUnixTimestamp
	case unixMilliRegex.MatchString(digits):
		return FormatUnixMilli
	default:
		return ""
	}
}

// Values returns the total number of values in the tree
func (s Stats) Values() int {
	total := 0
	for _, n := range s.Kinds {
		total += n
	}
	return total
}

// Report renders the stats for a document of size bytes
func (s Stats) Report(size int) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%-15s %s\n", "size:", humanize.Bytes(uint64(size)))
	fmt.Fprintf(&sb, "%-15s %s\n", "values:", humanize.Comma(int64(s.Values())))
	for k := value.KindNull; k <= value.KindObject; k++ {
		fmt.Fprintf(&sb, "  %-13s %s\n", k.String()+":", humanize.Comma(int64(s.Kinds[k])))
	}
	fmt.Fprintf(&sb, "%-15s %d\n", "max depth:", s.MaxDepth)
	fmt.Fprintf(&sb, "%-15s %s\n", "members:", humanize.Comma(int64(s.Members)))
	fmt.Fprintf(&sb, "%-15s %s\n", "elements:", humanize.Comma(int64(s.Elements)))
	fmt.Fprintf(&sb, "%-15s %s\n", "longest string:", humanize.Bytes(uint64(s.LongestString)))

	if len(s.Formats) > 0 {
		names := make([]string, 0, len(s.Formats))
		for name := range s.Formats {
			names = append(names, name)
		}
		sort.Strings(names)

		sb.WriteString("formats:\n")
		for _, name := range names {
			fmt.Fprintf(&sb, "  %-13s %s\n", name+":", humanize.Comma(int64(s.Formats[name])))
		}
	}

	return sb.String()
}
