package session

import (
	"fmt"

	"github.com/windlearn/kazegaku/internal/models"
	"github.com/windlearn/kazegaku/internal/shared"
)

// View identifies one of the four application screens.
type View int

const (
	ViewHome View = iota
	ViewSongDetail
	ViewTutor
	ViewQuiz
)

func (v View) String() string {
	switch v {
	case ViewHome:
		return "home"
	case ViewSongDetail:
		return "song-detail"
	case ViewTutor:
		return "tutor"
	case ViewQuiz:
		return "quiz"
	default:
		return ""
	}
}

// Event is a navigation trigger.
type Event int

const (
	// EventSelectSong selects a song from the home list. Carries a song.
	EventSelectSong Event = iota
	// EventAskTutor opens the tutor grounded in the selected song.
	EventAskTutor
	// EventTakeQuiz starts a quiz for the selected song.
	EventTakeQuiz
	// EventBack is the context-sensitive back action.
	EventBack
	// EventNavHome is the top-level home navigation.
	EventNavHome
	// EventNavTutor is the top-level tutor navigation.
	EventNavTutor
)

func (e Event) String() string {
	switch e {
	case EventSelectSong:
		return "select_song"
	case EventAskTutor:
		return "ask_tutor"
	case EventTakeQuiz:
		return "take_quiz"
	case EventBack:
		return "back"
	case EventNavHome:
		return "nav_home"
	case EventNavTutor:
		return "nav_tutor"
	default:
		return ""
	}
}

// NavState holds the current view and the two independent optional song
// slots. Selected is the song being studied; ChatContext grounds the
// tutor and is deliberately a separate slot so a tutor session without
// song context can coexist with an active song detail elsewhere.
type NavState struct {
	View        View
	Selected    *models.Song
	ChatContext *models.Song
}

// InitialState returns the home state with both song slots empty.
func InitialState() NavState {
	return NavState{View: ViewHome}
}

// Transition applies one navigation event to a state and returns the
// resulting state. It is a pure function: the input state is never
// mutated. Events that are not defined for the current view leave the
// state unchanged. The song argument is only read for EventSelectSong.
//
// Back behavior is context-sensitive: from quiz it returns to song
// detail with the selected song intact; from tutor it returns to song
// detail when a chat context is set; everywhere else it goes home and
// clears both song slots.
func Transition(s NavState, e Event, song *models.Song) NavState {
	switch e {
	case EventSelectSong:
		if s.View != ViewHome || song == nil {
			return s
		}
		s.View = ViewSongDetail
		s.Selected = song
		return s

	case EventAskTutor:
		if s.View != ViewSongDetail || s.Selected == nil {
			return s
		}
		s.View = ViewTutor
		s.ChatContext = s.Selected
		return s

	case EventTakeQuiz:
		if s.View != ViewSongDetail || s.Selected == nil {
			return s
		}
		s.View = ViewQuiz
		return s

	case EventBack:
		switch s.View {
		case ViewQuiz:
			s.View = ViewSongDetail
			return s
		case ViewTutor:
			if s.ChatContext != nil {
				s.View = ViewSongDetail
				return s
			}
			return goHome(s)
		case ViewSongDetail:
			return goHome(s)
		default:
			return s
		}

	case EventNavHome:
		return goHome(s)

	case EventNavTutor:
		// Top-level tutor navigation leaves the chat context untouched.
		s.View = ViewTutor
		return s

	default:
		return s
	}
}

func goHome(s NavState) NavState {
	s.View = ViewHome
	s.Selected = nil
	s.ChatContext = nil
	return s
}

// Validate checks the state invariants: quiz and song-detail views
// require a selected song.
func (s NavState) Validate() error {
	if (s.View == ViewQuiz || s.View == ViewSongDetail) && s.Selected == nil {
		return fmt.Errorf("%w: %s view requires a selected song", shared.ErrInvalidInput, s.View)
	}
	return nil
}
