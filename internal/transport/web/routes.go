package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/madewira/tripdesk/internal/catalog"
	"github.com/madewira/tripdesk/internal/intake"
	"github.com/madewira/tripdesk/internal/intent"
	"github.com/madewira/tripdesk/internal/parser/gemini"
	"github.com/madewira/tripdesk/internal/project"
	"github.com/madewira/tripdesk/internal/reservation"
)

// itemView pairs an item with its list projection so clients render the
// card without re-deriving variant-specific text.
type itemView struct {
	Item    reservation.Item `json:"item"`
	Label   string           `json:"label"`
	Icon    string           `json:"icon"`
	Summary string           `json:"summary"`
	Date    string           `json:"date,omitempty"`
}

type intakeView struct {
	ID       string                   `json:"id"`
	Customer reservation.CustomerInfo `json:"customer"`
	Items    []itemView               `json:"items"`
}

func newItemView(item reservation.Item) itemView {
	return itemView{
		Item:    item,
		Label:   catalog.Label(item.Type()),
		Icon:    project.Icon(item.Type()),
		Summary: project.Summarize(item),
		Date:    project.PrimaryDate(item),
	}
}

func newIntakeView(in intake.Intake) intakeView {
	items := make([]itemView, 0, len(in.Items))
	for _, item := range in.Items {
		items = append(items, newItemView(item))
	}

	return intakeView{ID: in.ID, Customer: in.Customer, Items: items}
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.l.LogErrorf("Could not encode response: %v", err.Error())
	}
}

func (s *Server) respondMessage(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}

// respondError maps domain errors onto status codes. Validation errors carry
// their field map; everything unexpected collapses to a bare 500.
func (s *Server) respondError(w http.ResponseWriter, err error) {
	if inputErr := reservation.IsInputError(err); inputErr != nil {
		s.respondJSON(w, http.StatusBadRequest, inputErr.Fields())

		return
	}

	switch {
	case errors.Is(err, intake.ErrIntakeNotFound),
		errors.Is(err, intake.ErrItemNotFound),
		errors.Is(err, reservation.ErrRecordNotFound):
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	case errors.Is(err, reservation.ErrUnknownItemType):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		s.l.LogErrorf("Could not handle request: %v", err.Error())
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (s *Server) createIntakeHandler(w http.ResponseWriter, r *http.Request) {
	in, err := s.intakes.CreateIntake(r.Context())
	if err != nil {
		s.respondError(w, err)

		return
	}

	s.respondJSON(w, http.StatusCreated, newIntakeView(in))
}

func (s *Server) getIntakeHandler(w http.ResponseWriter, r *http.Request) {
	in, err := s.intakes.Intake(r.PathValue("id"))
	if err != nil {
		s.respondError(w, err)

		return
	}

	s.respondJSON(w, http.StatusOK, newIntakeView(in))
}

func (s *Server) setCustomerHandler(w http.ResponseWriter, r *http.Request) {
	var customer reservation.CustomerInfo

	if err := json.NewDecoder(r.Body).Decode(&customer); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)

		return
	}

	if err := s.intakes.SetCustomer(r.PathValue("id"), customer); err != nil {
		s.respondError(w, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) upsertItemHandler(w http.ResponseWriter, r *http.Request) {
	var input intake.SubmitInput

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)

		return
	}

	item, err := s.intakes.UpsertItem(r.Context(), r.PathValue("id"), input)
	if err != nil {
		s.respondError(w, err)

		return
	}

	status := http.StatusCreated
	if input.ItemID != "" {
		status = http.StatusOK
	}

	s.respondJSON(w, status, newItemView(item))
}

func (s *Server) removeItemHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.intakes.RemoveItem(r.PathValue("id"), r.PathValue("itemID")); err != nil {
		s.respondError(w, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) saveHandler(w http.ResponseWriter, r *http.Request) {
	idempotencyKey := r.Header.Get("Idempotency-Key")
	if idempotencyKey == "" {
		http.Error(w, "Idempotency-Key header is missing", http.StatusBadRequest)

		return
	}

	var input struct {
		Mode reservation.SaveMode `json:"mode"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)

		return
	}

	if input.Mode != reservation.SaveDraft && input.Mode != reservation.SaveConfirm {
		http.Error(w, fmt.Sprintf("unknown save mode %q", input.Mode), http.StatusBadRequest)

		return
	}

	ctx := reservation.NewContextWithIdempotencyKey(r.Context(), idempotencyKey)

	res, err := s.intakes.Save(ctx, r.PathValue("id"), input.Mode)
	if err != nil {
		s.respondError(w, err)

		return
	}

	s.respondJSON(w, http.StatusCreated, res)
}

func (s *Server) getReservationHandler(w http.ResponseWriter, r *http.Request) {
	res, err := s.intakes.Reservation(r.Context(), r.PathValue("id"))
	if err != nil {
		s.respondError(w, err)

		return
	}

	s.respondJSON(w, http.StatusOK, res)
}

func (s *Server) catalogHandler(w http.ResponseWriter, _ *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]any{
		"types":           catalog.ReservationTypes,
		"quickCategories": catalog.QuickCategories(),
	})
}

type quickParseRequest struct {
	Text     string           `json:"text"`
	Category string           `json:"category"`
	Fields   intent.FormState `json:"fields"`
}

type quickParseResponse struct {
	Category string           `json:"category"`
	Fields   intent.FormState `json:"fields"`
	Display  struct {
		Date string `json:"date,omitempty"`
		Time string `json:"time,omitempty"`
	} `json:"display"`
}

// quickParseHandler runs magic paste: free text in, resolved category and
// merged field values out. On any parse failure the current form state is
// left alone and only an error message returns.
func (s *Server) quickParseHandler(w http.ResponseWriter, r *http.Request) {
	var req quickParseRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)

		return
	}

	parsed, err := s.parser.Parse(r.Context(), req.Text)

	switch {
	case errors.Is(err, gemini.ErrBusy):
		s.respondMessage(w, http.StatusConflict, "A parse is already running. Please wait.")

		return
	case errors.Is(err, gemini.ErrUnparseable):
		s.respondMessage(w, http.StatusUnprocessableEntity, "Could not understand the text. Please try again or enter manually.")

		return
	case err != nil:
		s.l.LogErrorf("Could not parse quick-capture text: %v", err.Error())
		s.respondMessage(w, http.StatusBadGateway, "Connection error. Please try again.")

		return
	}

	category, fields := intent.Reconcile(parsed, req.Category, req.Fields, time.Now())

	resp := quickParseResponse{Category: category, Fields: fields}
	resp.Display.Date = project.FormatDate(fields.Date)
	resp.Display.Time = project.FormatTime(fields.Time)

	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) livenessHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) addRoutes(r *http.ServeMux) {
	handle := func(pattern string, h http.HandlerFunc) {
		r.Handle(pattern, s.applyMiddlewares(h, s.loggerMiddleware(), s.recoverMiddleware()))
	}

	handle("POST /api/intakes/v1", s.createIntakeHandler)
	handle("GET /api/intakes/v1/{id}", s.getIntakeHandler)
	handle("PUT /api/intakes/v1/{id}/customer", s.setCustomerHandler)
	handle("POST /api/intakes/v1/{id}/items", s.upsertItemHandler)
	handle("DELETE /api/intakes/v1/{id}/items/{itemID}", s.removeItemHandler)
	handle("POST /api/intakes/v1/{id}/save", s.saveHandler)
	handle("GET /api/reservations/v1/{id}", s.getReservationHandler)
	handle("GET /api/catalog/v1", s.catalogHandler)
	handle("POST /api/quick/v1/parse", s.quickParseHandler)
	handle(fmt.Sprintf("GET %s", s.conf.LivenessEndpoint), s.livenessHandler)
}
