package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/windlearn/kazegaku/internal/catalog"
	"github.com/windlearn/kazegaku/internal/models"
	"github.com/windlearn/kazegaku/internal/repositories"
	"github.com/windlearn/kazegaku/internal/services"
	"github.com/windlearn/kazegaku/internal/session"
	"github.com/windlearn/kazegaku/internal/shared"
)

// Model represents the TUI application state. Navigation, lyric
// exploration, quizzes, and the tutor chat are owned by the session
// state machines; the model translates key presses into their events
// and async gateway calls into their resolutions.
type Model struct {
	ctx      context.Context
	nav      session.NavState
	songs    *catalog.Catalog
	gateway  services.Gateway
	analyses *repositories.AnalysisRepository
	results  *repositories.QuizResultRepository
	logger   *log.Logger

	width  int
	height int

	songList list.Model

	explorer *session.Explorer
	cursor   int

	quiz        *session.QuizEngine
	quizLoading bool
	resultSaved bool

	chat      *session.ChatSession
	chatInput textinput.Model

	help help.Model
	keys keyMap
	err  error
}

type analysisFetchedMsg struct {
	songID   string
	analysis *models.AnalysisResponse
}

type translationFetchedMsg struct {
	seq  uint64
	text string
}

type quizFetchedMsg struct {
	songID    string
	questions []models.QuizQuestion
	err       error
}

type tutorReplyMsg struct {
	reply string
}

// NewModel creates a new TUI model with the provided dependencies.
// The repositories are optional; without them nothing is cached or
// recorded.
func NewModel(ctx context.Context, songs *catalog.Catalog, gateway services.Gateway, analyses *repositories.AnalysisRepository, results *repositories.QuizResultRepository, logger *log.Logger) *Model {
	items := make([]list.Item, 0, songs.Len())
	for _, song := range songs.Songs() {
		items = append(items, songItem{song: song})
	}

	songList := list.New(items, list.NewDefaultDelegate(), 0, 0)
	songList.Title = "KazeGaku — 用歌詞學日文"

	input := textinput.New()
	input.Placeholder = "輸入你的問題..."

	return &Model{
		ctx:       ctx,
		nav:       session.InitialState(),
		songs:     songs,
		gateway:   gateway,
		analyses:  analyses,
		results:   results,
		logger:    logger,
		songList:  songList,
		chatInput: input,
		help:      help.New(),
		keys:      newKeyMap(),
	}
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.songList.SetSize(msg.Width-4, msg.Height-6)
		m.chatInput.Width = msg.Width - 8
		return m, nil

	case tea.KeyMsg:
		switch m.nav.View {
		case session.ViewHome:
			return m.handleHomeKeys(msg)
		case session.ViewSongDetail:
			return m.handleSongDetailKeys(msg)
		case session.ViewTutor:
			return m.handleTutorKeys(msg)
		case session.ViewQuiz:
			return m.handleQuizKeys(msg)
		}

	case analysisFetchedMsg:
		if m.explorer != nil && m.explorer.Song().ID == msg.songID {
			m.explorer.FinishAnalysis(msg.analysis)
		}
		return m, nil

	case translationFetchedMsg:
		if m.explorer != nil {
			m.explorer.ResolveTranslation(msg.seq, msg.text)
		}
		return m, nil

	case quizFetchedMsg:
		if m.nav.View != session.ViewQuiz || m.nav.Selected == nil || m.nav.Selected.ID != msg.songID {
			return m, nil
		}
		m.quizLoading = false
		if msg.err != nil {
			m.logf("quiz generation failed", "song", msg.songID, "error", msg.err)
			m.quiz = session.NewQuizEngine(nil)
			return m, nil
		}
		m.quiz = session.NewQuizEngine(msg.questions)
		return m, nil

	case tutorReplyMsg:
		if m.chat != nil {
			m.chat.Resolve(msg.reply)
		}
		return m, nil
	}

	var cmd tea.Cmd
	if m.nav.View == session.ViewHome {
		m.songList, cmd = m.songList.Update(msg)
	}
	return m, cmd
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.nav.View {
	case session.ViewHome:
		return m.renderHome()
	case session.ViewSongDetail:
		return m.renderSongDetail()
	case session.ViewTutor:
		return m.renderTutor()
	case session.ViewQuiz:
		return m.renderQuiz()
	default:
		return ""
	}
}

func (m *Model) handleHomeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "t":
		m.nav = session.Transition(m.nav, session.EventNavTutor, nil)
		return m, m.enterTutor()
	case "enter":
		selected := m.songList.SelectedItem()
		if selected != nil {
			if item, ok := selected.(songItem); ok {
				return m, m.enterSong(item.song)
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.songList, cmd = m.songList.Update(msg)
	return m, cmd
}

func (m *Model) handleSongDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	song := m.explorer.Song()

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.nav = session.Transition(m.nav, session.EventBack, nil)
		m.leaveSongIfHome()
		return m, nil
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "j":
		if m.cursor < len(song.Lines())-1 {
			m.cursor++
		}
		return m, nil
	case "enter":
		lines := song.Lines()
		if m.cursor < len(lines) {
			if seq, ok := m.explorer.RequestTranslation(lines[m.cursor]); ok {
				return m, m.translateLine(lines[m.cursor], seq)
			}
		}
		return m, nil
	case "x":
		m.explorer.ClosePanel()
		return m, nil
	case "t":
		m.nav = session.Transition(m.nav, session.EventAskTutor, nil)
		return m, m.enterTutor()
	case "z":
		m.nav = session.Transition(m.nav, session.EventTakeQuiz, nil)
		return m, m.startQuiz(song)
	case "o":
		if url := song.VideoURL(); url != "" {
			if err := shared.OpenBrowser(url); err != nil {
				m.logf("failed to open video", "song", song.ID, "error", err)
			}
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) handleTutorKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.nav = session.Transition(m.nav, session.EventBack, nil)
		m.chat = nil
		m.chatInput.Blur()
		m.leaveSongIfHome()
		return m, nil
	case "enter":
		if _, ok := m.chat.Send(m.chatInput.Value()); !ok {
			return m, nil
		}
		m.chatInput.SetValue("")
		return m, m.askTutor()
	}

	var cmd tea.Cmd
	m.chatInput, cmd = m.chatInput.Update(msg)
	return m, cmd
}

func (m *Model) handleQuizKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.nav = session.Transition(m.nav, session.EventBack, nil)
		m.quiz = nil
		m.quizLoading = false
		m.resultSaved = false
		return m, nil
	case "r":
		if m.quiz != nil && m.quiz.Finished() {
			m.quiz.Restart()
			m.resultSaved = false
		}
		return m, nil
	case "enter":
		if m.quiz == nil || !m.quiz.ExplanationShown() {
			return m, nil
		}
		m.quiz.Advance()
		if m.quiz.Finished() {
			m.recordResult()
		}
		return m, nil
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		if m.quiz != nil {
			m.quiz.Select(int(msg.String()[0] - '1'))
		}
		return m, nil
	}

	return m, nil
}

// enterSong transitions to the song detail view and kicks off the
// analysis fetch, serving from the local cache when possible.
func (m *Model) enterSong(song models.Song) tea.Cmd {
	m.nav = session.Transition(m.nav, session.EventSelectSong, &song)
	m.explorer = session.NewExplorer(song)
	m.cursor = 0
	m.explorer.BeginAnalysis()

	return func() tea.Msg {
		if m.analyses != nil {
			if cached, err := m.analyses.GetBySong(song.ID); err == nil {
				return analysisFetchedMsg{songID: song.ID, analysis: cached}
			}
		}

		analysis, err := m.gateway.AnalyzeLyrics(m.ctx, song.Lyrics, song.Title)
		if err != nil {
			m.logf("analysis failed", "song", song.ID, "error", err)
			return analysisFetchedMsg{songID: song.ID}
		}

		if m.analyses != nil {
			if err := m.analyses.Save(song.ID, analysis); err != nil {
				m.logf("failed to cache analysis", "song", song.ID, "error", err)
			}
		}
		return analysisFetchedMsg{songID: song.ID, analysis: analysis}
	}
}

// enterTutor starts a fresh chat session for the navigator's chat
// context slot. Transcripts never survive leaving the tutor view, so
// each entry opens with a new greeting.
func (m *Model) enterTutor() tea.Cmd {
	m.chat = session.NewChatSession(m.nav.ChatContext)
	return m.chatInput.Focus()
}

func (m *Model) translateLine(line string, seq uint64) tea.Cmd {
	return func() tea.Msg {
		text := m.gateway.QuickTranslation(m.ctx, line)
		return translationFetchedMsg{seq: seq, text: text}
	}
}

func (m *Model) startQuiz(song models.Song) tea.Cmd {
	m.quiz = nil
	m.quizLoading = true
	m.resultSaved = false

	return func() tea.Msg {
		questions, err := m.gateway.GenerateQuiz(m.ctx, song)
		return quizFetchedMsg{songID: song.ID, questions: questions, err: err}
	}
}

func (m *Model) askTutor() tea.Cmd {
	history := m.chat.Messages()
	contextSong := m.chat.Context()

	return func() tea.Msg {
		reply := m.gateway.AskTutor(m.ctx, history, contextSong)
		return tutorReplyMsg{reply: reply}
	}
}

// leaveSongIfHome drops per-song state when a back transition landed on home.
func (m *Model) leaveSongIfHome() {
	if m.nav.View != session.ViewHome {
		return
	}
	m.explorer = nil
	m.cursor = 0
	m.quiz = nil
	m.quizLoading = false
	m.resultSaved = false
}

// recordResult persists a finished attempt once per run-through.
func (m *Model) recordResult() {
	if m.resultSaved || m.results == nil || m.quiz == nil || m.nav.Selected == nil {
		return
	}
	if m.quiz.Empty() {
		return
	}

	result := models.NewQuizResult(0, m.nav.Selected.ID, m.quiz.Score(), m.quiz.Len())
	if err := m.results.Create(result); err != nil {
		m.logf("failed to record quiz result", "song", m.nav.Selected.ID, "error", err)
		return
	}
	m.resultSaved = true
}

func (m *Model) logf(msg string, kv ...any) {
	if m.logger != nil {
		m.logger.Error(msg, kv...)
	}
}

func (m *Model) renderHome() string {
	tutorKey := key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "tutor"))
	helpKeys := []key.Binding{m.keys.enter, tutorKey, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.songList.View(), helpView)
}

func (m *Model) renderSongDetail() string {
	song := m.explorer.Song()

	var b strings.Builder
	b.WriteString(styles.title.Render(fmt.Sprintf("%s (%s)", song.Title, song.RomajiTitle)))
	b.WriteString("\n")
	b.WriteString(styles.dim.Render(string(song.Difficulty)))
	b.WriteString("\n\n")

	lines := song.Lines()
	start, end := visibleRange(m.cursor, len(lines), m.lyricRows())
	for i := start; i < end; i++ {
		if i == m.cursor {
			b.WriteString(styles.cursor.Render("> " + lines[i]))
		} else {
			b.WriteString("  " + lines[i])
		}
		b.WriteString("\n")
	}

	if line, text, pending, open := m.explorer.Panel(); open {
		b.WriteString("\n")
		b.WriteString(styles.warn.Render(line))
		b.WriteString("\n")
		if pending {
			b.WriteString(styles.dim.Render("翻譯中..."))
		} else {
			b.WriteString(text)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.explorer.AnalysisPending() {
		b.WriteString(styles.dim.Render("分析中..."))
	} else if analysis, ok := m.explorer.Analysis(); ok {
		b.WriteString(styles.ok.Render("歌曲摘要"))
		b.WriteString("\n" + analysis.Summary)
		if len(analysis.Vocabulary) > 0 {
			b.WriteString(styles.dim.Render(fmt.Sprintf("\n重點單字 %d 個、文法 %d 項", len(analysis.Vocabulary), len(analysis.Grammar))))
		}
	}

	translateKey := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "translate"))
	helpKeys := []key.Binding{translateKey, m.keys.tutor, m.keys.quiz, m.keys.openVideo, m.keys.back, m.keys.quit}
	b.WriteString("\n\n" + m.help.ShortHelpView(helpKeys))

	return b.String()
}

func (m *Model) renderTutor() string {
	var b strings.Builder
	b.WriteString(styles.title.Render("日文 Sensei"))
	b.WriteString("\n")
	if contextSong := m.chat.Context(); contextSong != nil {
		b.WriteString(styles.dim.Render(fmt.Sprintf("討論中：%s", contextSong.Title)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for _, msg := range m.chat.Messages() {
		if msg.Role == models.RoleAssistant {
			b.WriteString(styles.ok.Render("Sensei: "))
		} else {
			b.WriteString(styles.warn.Render("你: "))
		}
		b.WriteString(msg.Text)
		b.WriteString("\n\n")
	}

	if m.chat.Pending() {
		b.WriteString(styles.dim.Render("Sensei 正在輸入..."))
		b.WriteString("\n\n")
	}

	b.WriteString(m.chatInput.View())
	b.WriteString("\n\n")

	sendKey := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send"))
	b.WriteString(m.help.ShortHelpView([]key.Binding{sendKey, m.keys.back}))

	return b.String()
}

func (m *Model) renderQuiz() string {
	var b strings.Builder
	b.WriteString(styles.title.Render(fmt.Sprintf("小測驗：%s", m.nav.Selected.Title)))
	b.WriteString("\n")

	switch {
	case m.quizLoading:
		b.WriteString(styles.dim.Render("出題中..."))

	case m.quiz == nil || m.quiz.Empty():
		b.WriteString(styles.warn.Render("無法產生題目，請稍後再試。"))
		b.WriteString("\n\n" + m.help.ShortHelpView([]key.Binding{m.keys.back, m.keys.quit}))

	case m.quiz.Finished():
		b.WriteString(styles.ok.Render(fmt.Sprintf("完成！得分 %d / %d", m.quiz.Score(), m.quiz.Len())))
		b.WriteString("\n\n" + m.help.ShortHelpView([]key.Binding{m.keys.restart, m.keys.back, m.keys.quit}))

	default:
		question, _ := m.quiz.Current()
		b.WriteString(styles.dim.Render(fmt.Sprintf("第 %d / %d 題　目前得分 %d", m.quiz.Index()+1, m.quiz.Len(), m.quiz.Score())))
		b.WriteString("\n\n" + question.Question + "\n\n")

		for i, option := range question.Options {
			label := fmt.Sprintf("%d. %s", i+1, option)
			switch {
			case m.quiz.ExplanationShown() && i == question.CorrectIndex:
				b.WriteString(styles.ok.Render(label))
			case m.quiz.ExplanationShown() && i == m.quiz.Selected():
				b.WriteString(styles.err.Render(label))
			default:
				b.WriteString(label)
			}
			b.WriteString("\n")
		}

		if m.quiz.ExplanationShown() {
			b.WriteString("\n" + styles.warn.Render(question.Explanation) + "\n")
			nextKey := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next"))
			b.WriteString("\n" + m.help.ShortHelpView([]key.Binding{nextKey, m.keys.back, m.keys.quit}))
		} else {
			answerKey := key.NewBinding(key.WithKeys("1-4"), key.WithHelp("1-4", "answer"))
			b.WriteString("\n" + m.help.ShortHelpView([]key.Binding{answerKey, m.keys.back, m.keys.quit}))
		}
	}

	return b.String()
}

// lyricRows returns how many lyric lines fit above the panels.
func (m *Model) lyricRows() int {
	rows := m.height - 14
	if rows < 5 {
		rows = 5
	}
	return rows
}

// visibleRange windows the lyric lines around the cursor.
func visibleRange(cursor, total, rows int) (int, int) {
	if total <= rows {
		return 0, total
	}

	start := cursor - rows/2
	if start < 0 {
		start = 0
	}
	end := start + rows
	if end > total {
		end = total
		start = end - rows
	}
	return start, end
}
