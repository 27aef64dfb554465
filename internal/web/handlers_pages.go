package web

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/sheetsync/internal/core"
	"github.com/JonMunkholm/sheetsync/internal/logging"
	"github.com/JonMunkholm/sheetsync/internal/sheet"
	"github.com/JonMunkholm/sheetsync/internal/web/views"
)

// pagePaths maps collection keys to the page that lists them.
var pagePaths = map[string]string{
	core.CustomersKey: "/",
	core.StudentsKey:  "/students",
}

// detailPath returns the page prefix for a record of key.
func detailPath(key string) string {
	if key == core.CustomersKey {
		return "/customers"
	}
	return "/" + key
}

func (s *Server) shell(title, active string) views.Shell {
	return views.Shell{Title: title, Active: active, CloseDelay: s.cfg.UI.CloseDelay}
}

// render writes a full page with status 200.
func (s *Server) render(w http.ResponseWriter, r *http.Request, shell views.Shell, body templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := views.Page(shell, body).Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render page", "title", shell.Title, "error", err)
	}
}

// handleCustomersPage renders the customer list and the new-customer form.
func (s *Server) handleCustomersPage(w http.ResponseWriter, r *http.Request) {
	def, _, err := s.service.Definition(core.CustomersKey)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	list, err := s.listData(r, core.CustomersKey, "No matching customers found.")
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	body := views.Stack(
		views.List(list),
		views.CustomerForm("/api/customers", customerFormFields(def)),
	)
	s.render(w, r, s.shell("Customers", core.CustomersKey), body)
}

// handleStudentsPage renders the student list and the import form.
func (s *Server) handleStudentsPage(w http.ResponseWriter, r *http.Request) {
	def, _, err := s.service.Definition(core.StudentsKey)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	list, err := s.listData(r, core.StudentsKey, "No matching students found.")
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	components := []templ.Component{views.List(list)}
	if def.Importable {
		components = append(components, views.ImportForm("/api/import/"+core.StudentsKey))
	}
	s.render(w, r, s.shell("Students", core.StudentsKey), views.Stack(components...))
}

func (s *Server) listData(r *http.Request, key, empty string) (views.ListData, error) {
	result, err := s.service.List(r.Context(), key, r.URL.Query().Get("search"))
	if err != nil {
		return views.ListData{}, err
	}
	return views.ListData{
		Heading:    result.Collection.Label,
		Action:     pagePaths[key],
		Columns:    result.Columns,
		Records:    result.Records,
		Total:      result.Total,
		Search:     result.Search,
		Empty:      empty,
		DetailPath: detailPath(key),
		ExportKey:  key,
	}, nil
}

// handleCustomerPage renders one customer with its item cards.
func (s *Server) handleCustomerPage(w http.ResponseWriter, r *http.Request) {
	s.renderDetail(w, r, core.CustomersKey)
}

// handleStudentPage renders the edit form of one student.
func (s *Server) handleStudentPage(w http.ResponseWriter, r *http.Request) {
	s.renderDetail(w, r, core.StudentsKey)
}

func (s *Server) renderDetail(w http.ResponseWriter, r *http.Request, key string) {
	handle, err := handleParam(r)
	if err != nil {
		s.respondBadRequest(w, r, err.Error())
		return
	}
	def, _, err := s.service.Definition(key)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	ctx := r.Context()
	rec, err := s.service.Record(ctx, key, handle)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	original, err := json.Marshal(rec.Fields)
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	apiPath := "/api/" + key + "/" + strconv.Itoa(handle)
	data := views.DetailData{
		Heading:   detailHeading(def, rec),
		BackPath:  pagePaths[key],
		UpdateURL: apiPath,
		Rows:      rec.Rows,
		Original:  string(original),
	}

	columns := def.Columns
	if len(columns) == 0 {
		columns = rec.Columns
	}
	for _, col := range columns {
		f := views.FormField{Name: col, Value: rec.Value(col), Required: isRequired(def, col)}
		if col == def.KeyField || col == def.LinkField {
			data.ReadOnly = append(data.ReadOnly, f)
			continue
		}
		// Dates stay text inputs; stored values may be full timestamps.
		data.Fields = append(data.Fields, f)
	}

	if def.HasChildren() {
		items, err := s.service.CustomerItems(ctx, rec)
		if err != nil {
			s.respondError(w, r, err, statusFor(err))
			return
		}
		childDef, _, err := s.service.Definition(def.ChildKey)
		if err != nil {
			s.respondError(w, r, err, statusFor(err))
			return
		}
		data.DeleteURL = apiPath
		data.ShowItems = true
		data.Items = items
		data.ItemColumns = childDef.Columns
	}

	s.render(w, r, s.shell(data.Heading, key), views.Detail(data))
}

// detailHeading names a record by its first non-blank list column.
func detailHeading(def core.CollectionDefinition, rec sheet.Record) string {
	for _, col := range def.Display(rec.Columns) {
		if v := rec.Value(col); v != "" {
			return v
		}
	}
	return def.Info.Label + " " + strconv.Itoa(rec.Handle)
}

func isRequired(def core.CollectionDefinition, field string) bool {
	for _, f := range def.Required {
		if f == field {
			return true
		}
	}
	return false
}

// customerFormFields lists the inputs of the new-customer form.
func customerFormFields(def core.CollectionDefinition) []views.FormField {
	fields := []views.FormField{
		{Name: core.ColCustomerName},
		{Name: core.ColContactName},
		{Name: core.ColContactNumber, Type: "tel"},
		{Name: core.ColDate, Label: "Date", Type: "date"},
		{Name: core.ColAddress},
	}
	for i := range fields {
		fields[i].Required = isRequired(def, fields[i].Name)
	}
	return fields
}
