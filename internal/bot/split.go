package bot

// MaxMessageLen is the per-message size limit of the chat transport.
const MaxMessageLen = 3800

// SplitMessage partitions s into ordered chunks of at most max runes each.
// Concatenating the chunks reproduces s exactly; there is no overlap or gap.
func SplitMessage(s string, max int) []string {
	if max <= 0 || len(s) == 0 {
		return []string{s}
	}
	runes := []rune(s)
	if len(runes) <= max {
		return []string{s}
	}
	chunks := make([]string, 0, (len(runes)+max-1)/max)
	for start := 0; start < len(runes); start += max {
		end := start + max
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}
