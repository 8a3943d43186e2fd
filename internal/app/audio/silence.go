package audio

import (
	"regexp"
	"strconv"
)

// silenceInterval is one detected run of silence, in milliseconds from the
// start of the file. endMs is -1 when the file ends while still silent.
type silenceInterval struct {
	startMs int64
	endMs   int64
}

// segment is a span of audio to keep, in milliseconds.
type segment struct {
	startMs int64
	endMs   int64
}

var (
	silenceStartRe = regexp.MustCompile(`silence_start:\s*(-?[\d.]+)`)
	silenceEndRe   = regexp.MustCompile(`silence_end:\s*(-?[\d.]+)`)
)

// parseSilenceIntervals reads ffmpeg silencedetect output. The filter logs
// silence_start and silence_end pairs on stderr; a start without a matching
// end means the file ended in silence.
func parseSilenceIntervals(ffmpegStderr string) []silenceInterval {
	starts := silenceStartRe.FindAllStringSubmatch(ffmpegStderr, -1)
	ends := silenceEndRe.FindAllStringSubmatch(ffmpegStderr, -1)

	intervals := make([]silenceInterval, 0, len(starts))
	for i, s := range starts {
		start := secondsToMs(s[1])
		end := int64(-1)
		if i < len(ends) {
			end = secondsToMs(ends[i][1])
		}
		intervals = append(intervals, silenceInterval{startMs: start, endMs: end})
	}
	return intervals
}

func secondsToMs(s string) int64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 {
		return 0
	}
	return int64(f * 1000)
}

// planKeepSegments computes the spans of audio to keep once the detected
// silence runs are cut out. keepMs of silence is preserved at each junction
// so the cuts are not abrupt; a silence run shorter than keepMs is left
// untouched.
func planKeepSegments(totalMs int64, silences []silenceInterval, keepMs int) []segment {
	segments := make([]segment, 0, len(silences)+1)
	cursor := int64(0)

	for _, sil := range silences {
		end := sil.endMs
		if end < 0 || end > totalMs {
			end = totalMs
		}
		cutStart := sil.startMs + int64(keepMs)
		if cutStart >= end {
			continue
		}
		if cutStart > cursor {
			segments = append(segments, segment{startMs: cursor, endMs: cutStart})
		}
		cursor = end
	}

	if cursor < totalMs {
		segments = append(segments, segment{startMs: cursor, endMs: totalMs})
	}
	return segments
}

// keptDurationMs sums the planned segments.
func keptDurationMs(segments []segment) int64 {
	var total int64
	for _, s := range segments {
		total += s.endMs - s.startMs
	}
	return total
}
