package http

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"net/url"

	"survey-assessment-service/internal/app"
	"survey-assessment-service/internal/domain"

	"github.com/gorilla/mux"
)

//go:embed templates/*.html
var templateFS embed.FS

type pageData map[string]interface{}

// Handler wires the survey flows into server-rendered pages.
type Handler struct {
	registration *app.RegistrationService
	survey       *app.SurveyService
	admin        *app.AdminService
	templates    *template.Template
}

func NewHandler(registration *app.RegistrationService, survey *app.SurveyService, admin *app.AdminService) (*Handler, error) {
	templates, err := template.New("").Funcs(template.FuncMap{
		"addOne": func(i int) int { return i + 1 },
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Handler{
		registration: registration,
		survey:       survey,
		admin:        admin,
		templates:    templates,
	}, nil
}

// Register mounts all routes. When assetsDir is non-empty the question images
// are served from it under /assets/.
func (h *Handler) Register(router *mux.Router, assetsDir string) {
	router.HandleFunc("/", h.ShowEntry).Methods(http.MethodGet)
	router.HandleFunc("/register", h.RegisterParticipant).Methods(http.MethodPost)
	router.HandleFunc("/survey", h.ShowSurvey).Methods(http.MethodGet)
	router.HandleFunc("/survey", h.SurveyAction).Methods(http.MethodPost)
	router.HandleFunc("/results", h.ShowResults).Methods(http.MethodGet)
	router.HandleFunc("/admin", h.ShowAdmin).Methods(http.MethodGet)
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}).Methods(http.MethodGet)
	if assetsDir != "" {
		router.PathPrefix("/assets/").Handler(
			http.StripPrefix("/assets/", http.FileServer(http.Dir(assetsDir))))
	}
}

// ShowEntry renders the username entry page.
func (h *Handler) ShowEntry(w http.ResponseWriter, r *http.Request) {
	h.renderEntry(w, "", "")
}

// RegisterParticipant validates and creates a participant, then forwards the
// user into the survey. Validation and conflict errors re-render the entry
// page inline.
func (h *Handler) RegisterParticipant(w http.ResponseWriter, r *http.Request) {
	raw := r.FormValue("username")
	participant, err := h.registration.Register(r.Context(), raw)
	if err != nil {
		h.renderEntry(w, raw, registrationMessage(err))
		return
	}
	http.Redirect(w, r, "/survey?username="+url.QueryEscape(participant.Username), http.StatusSeeOther)
}

// ShowSurvey renders the current question for a username. A missing username
// is a navigational fallback to the entry page, not an error.
func (h *Handler) ShowSurvey(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if username == "" {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	session, err := h.survey.Resume(r.Context(), username)
	if err != nil {
		log.Printf("resume session for %q: %v", username, err)
		http.Error(w, "failed to load survey", http.StatusInternalServerError)
		return
	}
	h.renderSurvey(w, session, "")
}

// SurveyAction records the submitted choice (if any) and performs the
// requested navigation: previous, next or submit.
func (h *Handler) SurveyAction(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	if username == "" {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	ctx := r.Context()

	session, err := h.survey.Resume(ctx, username)
	if err != nil {
		log.Printf("resume session for %q: %v", username, err)
		http.Error(w, "failed to load survey", http.StatusInternalServerError)
		return
	}

	if optionID := r.FormValue("optionId"); optionID != "" {
		updated, selectErr := h.survey.SelectAnswer(ctx, username, r.FormValue("questionId"), optionID)
		if selectErr != nil {
			if errors.Is(selectErr, domain.ErrQuestionNotFound) || errors.Is(selectErr, domain.ErrOptionNotFound) {
				h.renderSurvey(w, session, "Invalid answer selection")
				return
			}
			log.Printf("record answer for %q: %v", username, selectErr)
			h.renderSurvey(w, session, "Failed to save your answer. Please try again.")
			return
		}
		session = updated
	}

	switch r.FormValue("action") {
	case "next":
		session, err = h.survey.Next(ctx, username)
		if errors.Is(err, domain.ErrAnswerRequired) {
			h.renderSurvey(w, session, "Please select an answer before continuing")
			return
		}
	case "previous":
		session, err = h.survey.Previous(ctx, username)
	case "submit":
		result, submitErr := h.survey.Submit(ctx, username)
		if submitErr != nil {
			h.renderSurvey(w, session, submissionMessage(submitErr))
			return
		}
		payload, marshalErr := json.Marshal(result)
		if marshalErr != nil {
			log.Printf("marshal result for %q: %v", username, marshalErr)
			h.renderSurvey(w, session, "Failed to submit survey. Please try again.")
			return
		}
		http.Redirect(w, r, "/results?data="+url.QueryEscape(string(payload)), http.StatusSeeOther)
		return
	}
	if err != nil {
		log.Printf("survey action for %q: %v", username, err)
		http.Error(w, "failed to update survey", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/survey?username="+url.QueryEscape(username), http.StatusSeeOther)
}

// ShowResults renders a previously computed result payload passed through the
// data query parameter. Absent or unparseable payloads fall back to the entry
// page.
func (h *Handler) ShowResults(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("data")
	if raw == "" {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	var result domain.SurveyResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil || result.TotalQuestions == 0 {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	h.renderPage(w, "results.html", pageData{
		"Title":         "Survey Results",
		"Result":        result,
		"Passed":        app.Passed(result.Percentage),
		"ScoreClass":    scoreClass(result.Percentage),
		"CategoryClass": categoryClass(result.ResultCategory),
	})
}

type adminRow struct {
	Response      domain.SurveyResponse
	Answers       string
	Passed        bool
	ScoreClass    string
	CategoryClass string
}

// ShowAdmin renders the dashboard: aggregate statistics and the full response
// table, newest first. ?refresh=1 bypasses the response cache and backs both
// the Refresh Data and the error-state Retry actions.
func (h *Handler) ShowAdmin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var (
		dashboard app.Dashboard
		err       error
	)
	if r.URL.Query().Get("refresh") == "1" {
		dashboard, err = h.admin.Refresh(ctx)
	} else {
		dashboard, err = h.admin.Dashboard(ctx)
	}
	if err != nil {
		log.Printf("load dashboard: %v", err)
		h.renderPage(w, "admin_error.html", pageData{
			"Title": "Admin Dashboard",
			"Error": "Failed to load admin data",
		})
		return
	}

	rows := make([]adminRow, 0, len(dashboard.Responses))
	for _, response := range dashboard.Responses {
		rows = append(rows, adminRow{
			Response:      response,
			Answers:       h.admin.FormatAnswers(response.Answers),
			Passed:        app.Passed(response.PercentageScore),
			ScoreClass:    scoreClass(response.PercentageScore),
			CategoryClass: categoryClass(response.ResultCategory),
		})
	}

	data := pageData{
		"Title": "Admin Dashboard",
		"Rows":  rows,
	}
	if dashboard.Statistics != nil {
		data["Statistics"] = dashboard.Statistics
	}
	h.renderPage(w, "admin.html", data)
}

func (h *Handler) renderEntry(w http.ResponseWriter, username, errorMessage string) {
	h.renderPage(w, "index.html", pageData{
		"Title":    "Welcome to the Survey",
		"Username": username,
		"Error":    errorMessage,
	})
}

func (h *Handler) renderSurvey(w http.ResponseWriter, session app.SurveySession, errorMessage string) {
	bank := h.survey.Questions()
	index := session.Current
	if index < 0 || index >= len(bank) {
		index = 0
	}
	question := bank[index]
	h.renderPage(w, "survey.html", pageData{
		"Title":    "Survey Assessment",
		"Username": session.Username,
		"Question": question,
		"Number":   index + 1,
		"Total":    len(bank),
		"Progress": (index + 1) * 100 / len(bank),
		"Answered": len(session.Answers),
		"Selected": session.Answers[question.ID],
		"IsFirst":  index == 0,
		"IsLast":   index == len(bank)-1,
		"Error":    errorMessage,
	})
}

// renderPage executes the content template into a buffer, then wraps it in
// the shared layout.
func (h *Handler) renderPage(w http.ResponseWriter, contentTmpl string, data pageData) {
	buf := new(bytes.Buffer)
	if err := h.templates.ExecuteTemplate(buf, contentTmpl, data); err != nil {
		log.Printf("executing content template %s: %v", contentTmpl, err)
		http.Error(w, "template rendering error", http.StatusInternalServerError)
		return
	}
	data["PageContent"] = template.HTML(buf.String())

	if err := h.templates.ExecuteTemplate(w, "layout.html", data); err != nil {
		log.Printf("executing layout template: %v", err)
	}
}

func registrationMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptyUsername):
		return "Username can't be empty"
	case errors.Is(err, domain.ErrUsernameTooShort):
		return "Username must be at least 3 characters long"
	case errors.Is(err, domain.ErrUsernameTooLong):
		return "Username must be less than 20 characters"
	case errors.Is(err, domain.ErrUsernameTaken):
		return "This username is already taken. Please choose another one."
	default:
		return "An error occurred while validating your username. Please try again."
	}
}

func submissionMessage(err error) string {
	var incomplete *domain.IncompleteSubmissionError
	switch {
	case errors.As(err, &incomplete):
		return fmt.Sprintf("Please answer all questions. Missing: %d question(s)", incomplete.Missing)
	case errors.Is(err, domain.ErrAlreadySubmitted):
		return "You have already completed this survey"
	case errors.Is(err, domain.ErrParticipantNotFound):
		return "Participant not found. Please register first."
	default:
		return "Failed to submit survey. Please try again."
	}
}

func scoreClass(percentage int) string {
	switch {
	case percentage >= 80:
		return "score-green"
	case percentage >= 60:
		return "score-blue"
	case percentage >= 40:
		return "score-yellow"
	default:
		return "score-red"
	}
}

func categoryClass(category string) string {
	switch category {
	case domain.CategoryExcellent:
		return "badge-green"
	case domain.CategoryGood:
		return "badge-blue"
	case domain.CategoryFair:
		return "badge-yellow"
	default:
		return "badge-red"
	}
}
