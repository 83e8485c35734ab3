package page

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// Actions exposes the controllers' commands over HTTP. The page is the
// read side; these endpoints are the write side. State still lives in
// the controllers only.
type Actions struct {
	renderer *Renderer
}

// NewActions wraps the renderer's controllers.
func NewActions(renderer *Renderer) *Actions {
	return &Actions{renderer: renderer}
}

// SearchInput records a keystroke and answers with the current search
// snapshot. The actual request is issued only after the input settles.
func (a *Actions) SearchInput(w http.ResponseWriter, r *http.Request) {
	a.renderer.search.OnInput(r.FormValue("q"))
	a.writeSearchSnapshot(w)
}

// SearchSubmit bypasses the debounce (the explicit search button).
func (a *Actions) SearchSubmit(w http.ResponseWriter, r *http.Request) {
	a.renderer.search.SubmitNow(r.FormValue("q"))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// SearchState answers with the current search snapshot, for clients
// polling while a search is in flight.
func (a *Actions) SearchState(w http.ResponseWriter, r *http.Request) {
	a.writeSearchSnapshot(w)
}

// SearchSelect resolves a result click to its navigation target and
// resets the search state.
func (a *Actions) SearchSelect(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.FormValue("index"))
	if err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	target, ok := a.renderer.search.SelectResult(index)
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// SearchBlur schedules the results panel to close after the grace
// period.
func (a *Actions) SearchBlur(w http.ResponseWriter, r *http.Request) {
	a.renderer.search.Blur()
	w.WriteHeader(http.StatusNoContent)
}

// ChatSend submits a question to the assistant. Blank questions and
// sends while a reply is outstanding are dropped by the session.
func (a *Actions) ChatSend(w http.ResponseWriter, r *http.Request) {
	a.renderer.chat.Send(r.Context(), r.FormValue("question"))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (a *Actions) writeSearchSnapshot(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(a.renderer.search.Snapshot())
}
