package compiler

import (
	"fmt"
	"strings"
)

// codeFrameRange is the number of context lines shown around a range.
const codeFrameRange = 2

// GenerateCodeFrame renders the lines of source around [start, end) with
// line numbers and a caret row under the range:
//
//	1  |  <div>
//	   |  ^^^^^
//	2  |    <span>
func GenerateCodeFrame(source string, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(source) {
		end = len(source)
	}
	if end < start {
		end = start
	}

	lines := strings.Split(source, "\n")
	var res []string
	count := 0
	for i, line := range lines {
		count += len(line) + 1
		if count <= start && i < len(lines)-1 {
			continue
		}
		for j := i - codeFrameRange; j <= i+codeFrameRange || end > count; j++ {
			if j < 0 {
				continue
			}
			if j >= len(lines) {
				break
			}
			res = append(res, fmt.Sprintf("%d%s|  %s",
				j+1, strings.Repeat(" ", max(3-len(fmt.Sprint(j+1)), 0)), lines[j]))

			lineLength := len(lines[j])
			switch {
			case j == i:
				pad := start - (count - lineLength) + 1
				length := lineLength - pad
				if end > count {
					length = max(length, 0)
				} else {
					length = end - start
				}
				res = append(res, "   |  "+strings.Repeat(" ", max(pad, 0))+strings.Repeat("^", max(length, 1)))
			case j > i:
				if end > count {
					length := min(end-count, lineLength)
					res = append(res, "   |  "+strings.Repeat("^", max(length, 1)))
				}
				count += lineLength + 1
			}
		}
		break
	}
	return strings.Join(res, "\n")
}
