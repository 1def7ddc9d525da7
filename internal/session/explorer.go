package session

import (
	"strings"

	"github.com/windlearn/kazegaku/internal/models"
)

// Explorer holds the lyric-explorer state for one song: the analysis
// fetched on entry and the single translation panel keyed to the most
// recently requested line.
//
// Translation requests are tagged with a monotonically increasing
// sequence number at dispatch time. A resolution is applied only when
// its sequence is still the latest dispatched, so rapid re-clicking
// can never surface a stale result after a newer one.
type Explorer struct {
	song models.Song

	analysis        *models.AnalysisResponse
	analysisPending bool

	line        string
	translation string
	translating bool
	seq         uint64
}

// NewExplorer creates explorer state for a song with no analysis and no
// translation panel.
func NewExplorer(song models.Song) *Explorer {
	return &Explorer{song: song}
}

// Song returns the song being explored.
func (e *Explorer) Song() models.Song {
	return e.song
}

// BeginAnalysis marks the per-song analysis fetch as in flight.
func (e *Explorer) BeginAnalysis() {
	e.analysisPending = true
}

// FinishAnalysis records the fetched analysis. A nil analysis means the
// fetch failed; the page still renders lyrics without an analysis pane.
func (e *Explorer) FinishAnalysis(analysis *models.AnalysisResponse) {
	e.analysisPending = false
	e.analysis = analysis
}

// Analysis returns the analysis and whether one is present.
func (e *Explorer) Analysis() (*models.AnalysisResponse, bool) {
	return e.analysis, e.analysis != nil
}

// AnalysisPending reports whether the analysis fetch is in flight.
func (e *Explorer) AnalysisPending() bool {
	return e.analysisPending
}

// RequestTranslation opens the translation panel for a lyric line and
// returns the sequence number tagging this dispatch. Blank lines are
// not translatable and return false.
func (e *Explorer) RequestTranslation(line string) (uint64, bool) {
	if strings.TrimSpace(line) == "" {
		return 0, false
	}

	e.seq++
	e.line = line
	e.translation = ""
	e.translating = true
	return e.seq, true
}

// ResolveTranslation applies a finished translation if its sequence is
// still the latest dispatched. Stale resolutions are discarded and
// return false.
func (e *Explorer) ResolveTranslation(seq uint64, text string) bool {
	if seq != e.seq {
		return false
	}

	e.translation = text
	e.translating = false
	return true
}

// Panel returns the translation panel contents: the requested line, the
// translation text (empty while in flight), whether a request is
// pending, and whether the panel is open at all.
func (e *Explorer) Panel() (line, text string, pending, open bool) {
	return e.line, e.translation, e.translating, e.line != ""
}

// ClosePanel dismisses the translation panel. A still-pending request
// may resolve later but will find its sequence stale.
func (e *Explorer) ClosePanel() {
	e.seq++
	e.line = ""
	e.translation = ""
	e.translating = false
}
