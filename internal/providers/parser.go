package providers

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	thinkBlock   = regexp.MustCompile(`(?s)<think>.*?(</think>|$)`)
	jsonObject   = regexp.MustCompile(`(?s)\{.*\}`)
	scoreReason  = regexp.MustCompile(`(?is)SCORE:\s*(100|[0-9]{1,2})\s*;\s*REASON:\s*(.*)`)
	bareNumber   = regexp.MustCompile(`\b(100|[0-9]{1,2})\b`)
)

// ParseDetection extracts a 0-100 score and reasoning from detector output.
// Models do not reliably honor the one-line SCORE/REASON contract, so this
// walks a cascade: strip private <think> blocks, try an embedded JSON object,
// then the SCORE/REASON line, then any bare number.
func ParseDetection(raw string) (int, string, error) {
	cleaned := strings.TrimSpace(thinkBlock.ReplaceAllString(raw, ""))

	if m := jsonObject.FindString(cleaned); m != "" {
		var obj struct {
			Score     *int   `json:"score"`
			Reasoning string `json:"reasoning"`
		}
		if err := json.Unmarshal([]byte(m), &obj); err == nil && obj.Score != nil {
			return clampScore(*obj.Score), strings.TrimSpace(obj.Reasoning), nil
		}
	}

	if m := scoreReason.FindStringSubmatch(cleaned); m != nil {
		score, _ := strconv.Atoi(m[1])
		return clampScore(score), strings.TrimSpace(m[2]), nil
	}

	if m := bareNumber.FindString(cleaned); m != "" {
		score, _ := strconv.Atoi(m)
		return clampScore(score), cleaned, nil
	}

	return 0, "", fmt.Errorf("unexpected detector output: %s", raw)
}

func clampScore(s int) int {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}
