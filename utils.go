package evnet

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/golang/geo/r2"
)

func Euclidean(a, b r2.Point) float64 {
	return a.Sub(b).Norm()
}

func RoundTo(val float64, decimals int) float64 {
	ratio := math.Pow(10, float64(decimals))
	return math.Round(val*ratio) / ratio
}

// pyFloat renders a float the way the downstream tooling expects: shortest
// representation, but never without a decimal point ("0.0", "7.5").
func pyFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

func formatIntList(row []int) string {
	parts := make([]string, len(row))
	for i, v := range row {
		parts[i] = strconv.Itoa(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func formatFloatList(row []float64, decimals int) string {
	parts := make([]string, len(row))
	for i, v := range row {
		if decimals >= 0 {
			v = RoundTo(v, decimals)
		}
		parts[i] = pyFloat(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// FormatIntMatrix renders a matrix as a bracketed list with one row per line,
// matching the example text artifacts.
func FormatIntMatrix(m [][]int) string {
	var b strings.Builder
	b.WriteString("[\n")
	for i, row := range m {
		suffix := ","
		if i == len(m)-1 {
			suffix = ""
		}
		fmt.Fprintf(&b, " %s%s\n", formatIntList(row), suffix)
	}
	b.WriteString("]")
	return b.String()
}

func FormatFloatMatrix(m [][]float64, decimals int) string {
	var b strings.Builder
	b.WriteString("[\n")
	for i, row := range m {
		suffix := ","
		if i == len(m)-1 {
			suffix = ""
		}
		fmt.Fprintf(&b, " %s%s\n", formatFloatList(row, decimals), suffix)
	}
	b.WriteString("]")
	return b.String()
}

// SanitizeJsonArrayLineBreaks collapses numeric JSON arrays onto single lines
// after MarshalIndent, so matrix rows stay readable in the artifact files.
func SanitizeJsonArrayLineBreaks(json string) string {
	res := json
	var numbers = regexp.MustCompile(`\s*([-]?[0-9]+(\.[0-9]+)?),\s+([-]?[0-9]+(\.[0-9]+)?)(,)?`)
	var brackets = regexp.MustCompile(`\[(([-]?[0-9]+(\.[0-9]+)?,)+[-]?[0-9]+(\.[0-9]+)?)\s+\](,?)(\s+)`)
	for numbers.MatchString(res) {
		res = numbers.ReplaceAllString(res, "$1,$3$5")
	}
	for brackets.MatchString(res) {
		res = brackets.ReplaceAllString(res, "[$1]$5$6")
	}
	return res
}

// ConvertPath rewrites a numeric route string ("0->1->11") into its labeled
// form ("D -> 1 -> C1"). Unknown or non-numeric segments pass through as-is,
// empty segments from trailing separators are dropped.
func ConvertPath(path string, labels []string, inSep, outSep string) string {
	segments := strings.Split(path, inSep)
	var out []string
	for _, seg := range segments {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		if idx, err := strconv.Atoi(seg); err == nil && idx >= 0 && idx < len(labels) {
			out = append(out, labels[idx])
			continue
		}
		out = append(out, seg)
	}
	return strings.Join(out, outSep)
}
