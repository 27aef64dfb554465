package web

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/JonMunkholm/sheetsync/internal/config"
	"github.com/JonMunkholm/sheetsync/internal/core"
	_ "github.com/JonMunkholm/sheetsync/internal/core/collections"
	"github.com/JonMunkholm/sheetsync/internal/sheet"
	"github.com/JonMunkholm/sheetsync/internal/sheet/sheettest"
)

var (
	customerHeaders = []string{"Customer ID", "Customer Name", "Contact Name", "Contact Number", "date", "Address", "Item ID's"}
	itemHeaders     = []string{"Item ID", "Item Code", "Item Description", "Qty", "Rate", "Amount", "Customer ID"}
	studentHeaders  = []string{"Name", "Grade", "Email"}
)

type testServer struct {
	srv  *Server
	fake *sheettest.Fake
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	fake, backend := sheettest.NewServer("sheet-1")
	t.Cleanup(backend.Close)
	fake.Seed("Customers", customerHeaders)
	fake.Seed("Items", itemHeaders)
	fake.Seed("Records", studentHeaders)

	opts := sheet.Options{Endpoint: backend.URL, CollectionID: "sheet-1"}
	stores := make(map[string]core.SheetStore)
	for key, name := range map[string]string{
		core.CustomersKey: "Customers",
		core.ItemsKey:     "Items",
		core.StudentsKey:  "Records",
	} {
		c, err := sheet.New(opts.WithCollection(name))
		if err != nil {
			t.Fatalf("sheet.New(%s) error = %v", name, err)
		}
		stores[key] = c
	}

	svc, err := core.NewService(core.Options{
		Stores: stores,
		Clock:  func() time.Time { return time.UnixMilli(1700000000000) },
	})
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}

	cfg := &config.Config{
		Server: config.ServerConfig{RequestTimeout: time.Minute, MaxImportSize: 1 << 20},
		UI:     config.UIConfig{ToastDuration: 3 * time.Second, CloseDelay: time.Second},
	}
	return &testServer{srv: NewServer(svc, cfg), fake: fake}
}

func (ts *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	ts.srv.Router().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode response: %v: %s", err, rec.Body.String())
	}
	return v
}

type mutationBody struct {
	RecordID string          `json:"recordId"`
	Notice   core.Notice     `json:"notice"`
	Plan     core.PlanReport `json:"plan"`
	Code     string          `json:"code"`
	Message  string          `json:"message"`
}

func createBody() map[string]any {
	return map[string]any{
		"customer": map[string]string{
			"Customer Name":  "Acme",
			"Contact Name":   "Jane Roe",
			"Contact Number": "555-0100",
			"date":           "2024-05-01",
			"Address":        "12 Main St",
		},
		"items": []map[string]string{
			{"code": "W-1", "description": "Widget", "qty": "2", "rate": "25"},
			{"code": "G-1", "description": "Gadget", "qty": "1", "rate": "10"},
		},
	}
}

func TestCreateCustomer(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/customers", createBody())
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	body := decode[mutationBody](t, rec)
	if body.Notice.Kind != core.NoticeSuccess || body.Notice.Text != "Customer & Items saved successfully!" {
		t.Errorf("notice = %+v", body.Notice)
	}
	if body.Notice.DismissAfterMS != 3000 {
		t.Errorf("dismissAfterMs = %d, want 3000", body.Notice.DismissAfterMS)
	}
	if body.RecordID != "CUST-1700000000000" {
		t.Errorf("recordId = %q", body.RecordID)
	}
	if len(body.Plan.Steps) != 4 {
		t.Errorf("plan has %d steps, want 4", len(body.Plan.Steps))
	}
	if body.Code != "" {
		t.Errorf("successful response should carry no error code, got %q", body.Code)
	}

	if got := len(ts.fake.Rows("Customers")); got != 1 {
		t.Errorf("customer rows = %d, want 1", got)
	}
	if got := len(ts.fake.Rows("Items")); got != 2 {
		t.Errorf("item rows = %d, want 2", got)
	}
}

func TestCreateCustomer_MissingRequired(t *testing.T) {
	ts := newTestServer(t)

	body := createBody()
	body["customer"].(map[string]string)["Customer Name"] = "  "

	rec := ts.do(t, http.MethodPost, "/api/customers", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	got := decode[mutationBody](t, rec)
	if got.Code != "VAL003" || got.Notice.Text != "Failed to submit" {
		t.Errorf("code = %q notice = %+v", got.Code, got.Notice)
	}
	if len(ts.fake.Calls()) != 0 {
		t.Errorf("no sheet call expected, got %d", len(ts.fake.Calls()))
	}
}

func TestListAndSearch(t *testing.T) {
	ts := newTestServer(t)
	ts.fake.Seed("Customers", customerHeaders,
		[]string{"CUST-1", "Acme", "Jane", "1", "", "Main St", ""},
		[]string{"CUST-2", "Globex", "Hank", "2", "", "Elm St", ""},
	)

	rec := ts.do(t, http.MethodGet, "/api/customers?search=ACME", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	list := decode[core.ListResult](t, rec)
	if len(list.Records) != 1 || list.Records[0].Value("Customer Name") != "Acme" {
		t.Errorf("records = %+v", list.Records)
	}
	if list.Total != 2 {
		t.Errorf("total = %d, want 2", list.Total)
	}
	if list.Records[0].Handle != 1 || list.Records[0].Rows != 2 {
		t.Errorf("handle/rows = %d/%d, want 1/2", list.Records[0].Handle, list.Records[0].Rows)
	}
}

func TestUpdate(t *testing.T) {
	ts := newTestServer(t)
	ts.fake.Seed("Records", studentHeaders,
		[]string{"Ann", "A", "ann@example.com"},
		[]string{"Bob", "B", "bob@example.com"},
	)

	rec := ts.do(t, http.MethodPut, "/api/students/2", map[string]any{
		"rows":     2,
		"original": map[string]string{"Name": "Bob", "Grade": "B", "Email": "bob@example.com"},
		"fields":   map[string]string{"Grade": "A+"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if got := decode[mutationBody](t, rec).Notice.Text; got != "Student updated!" {
		t.Errorf("notice = %q", got)
	}

	rows := ts.fake.Rows("Records")
	if strings.Join(rows[1], "|") != "Bob|A+|bob@example.com" {
		t.Errorf("row 2 = %v", rows[1])
	}
}

func TestUpdate_StaleHandle(t *testing.T) {
	ts := newTestServer(t)
	ts.fake.Seed("Records", studentHeaders, []string{"Ann", "A", "ann@example.com"})

	rec := ts.do(t, http.MethodPut, "/api/students/1", map[string]any{
		"rows":     1,
		"original": map[string]string{"Name": "Someone else", "Grade": "A", "Email": "ann@example.com"},
		"fields":   map[string]string{"Grade": "C"},
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409: %s", rec.Code, rec.Body.String())
	}

	body := decode[mutationBody](t, rec)
	if body.Code != "STALE001" {
		t.Errorf("code = %q, want STALE001", body.Code)
	}
	if body.Notice.Kind != core.NoticeError || body.Notice.Text != "Failed to update student." {
		t.Errorf("notice = %+v", body.Notice)
	}
	if len(ts.fake.CallsFor(sheet.FnUpdate, "Records")) != 0 {
		t.Error("stale update must not write")
	}
}

func TestUpdate_BadRequests(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name string
		path string
		body any
		want int
		code string
	}{
		{"zero handle", "/api/students/0", map[string]any{"fields": map[string]string{"Grade": "A"}}, http.StatusBadRequest, codeBadRequest},
		{"no fields", "/api/students/1", map[string]any{"rows": 1}, http.StatusBadRequest, codeBadRequest},
		{"unknown collection", "/api/nope/1", map[string]any{"fields": map[string]string{"a": "b"}}, http.StatusNotFound, "COL001"},
		{"read-only field", "/api/customers/1", map[string]any{
			"rows":     1,
			"original": map[string]string{"Customer ID": "CUST-1"},
			"fields":   map[string]string{"Customer ID": "CUST-2"},
		}, http.StatusBadRequest, "VAL002"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.do(t, http.MethodPut, tt.path, tt.body)
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.want, rec.Body.String())
			}
			if got := decode[ErrorResponse](t, rec).Code; got != tt.code {
				t.Errorf("code = %q, want %q", got, tt.code)
			}
		})
	}
}

func TestDeleteCustomer(t *testing.T) {
	ts := newTestServer(t)
	ts.fake.Seed("Customers", customerHeaders,
		[]string{"CUST-1", "Acme", "Jane", "1", "", "Main St", "ITEM-1-0,ITEM-1-9"},
	)
	ts.fake.Seed("Items", itemHeaders,
		[]string{"ITEM-0-0", "X", "", "1", "1", "1", "CUST-0"},
		[]string{"ITEM-1-0", "W-1", "", "2", "25", "50", "CUST-1"},
	)

	rec := ts.do(t, http.MethodDelete, "/api/customers/1", map[string]any{
		"rows":     1,
		"original": map[string]string{"Customer ID": "CUST-1", "Item ID's": "ITEM-1-0,ITEM-1-9"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	body := decode[mutationBody](t, rec)
	if body.Notice.Text != "Customer and related items deleted." {
		t.Errorf("notice = %q", body.Notice.Text)
	}
	if len(ts.fake.Rows("Customers")) != 0 {
		t.Error("customer row should be gone")
	}
	items := ts.fake.Rows("Items")
	if len(items) != 1 || items[0][0] != "ITEM-0-0" {
		t.Errorf("items = %v, want only ITEM-0-0", items)
	}

	var notes []string
	for _, s := range body.Plan.Steps {
		notes = append(notes, s.Note)
	}
	if !strings.Contains(strings.Join(notes, ","), "not found") {
		t.Errorf("missing item should be noted, steps = %+v", body.Plan.Steps)
	}
}

func TestQuote(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/customers/quote", map[string]any{
		"items": []map[string]string{
			{"qty": "2", "rate": "12.5"},
			{"qty": "x", "rate": "3"},
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	q := decode[core.Quote](t, rec)
	if q.Total != 25 || q.Lines[1].Amount != 0 {
		t.Errorf("quote = %+v", q)
	}
}

func TestCustomerItems(t *testing.T) {
	ts := newTestServer(t)
	ts.fake.Seed("Customers", customerHeaders,
		[]string{"CUST-1", "Acme", "Jane", "1", "", "Main St", "ITEM-1-1,ITEM-1-0"},
	)
	ts.fake.Seed("Items", itemHeaders,
		[]string{"ITEM-1-0", "W-1", "", "2", "25", "50", "CUST-1"},
		[]string{"ITEM-2-0", "Z", "", "1", "1", "1", "CUST-2"},
		[]string{"ITEM-1-1", "G-1", "", "1", "10", "10", "CUST-1"},
	)

	rec := ts.do(t, http.MethodGet, "/api/customers/1/items", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	body := decode[struct {
		Customer sheet.Record   `json:"customer"`
		Items    []sheet.Record `json:"items"`
	}](t, rec)
	if len(body.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(body.Items))
	}
	if body.Items[0].Value("Item Code") != "W-1" || body.Items[1].Value("Item Code") != "G-1" {
		t.Errorf("items not in sheet order: %+v", body.Items)
	}
}

func TestExportCSV(t *testing.T) {
	ts := newTestServer(t)
	ts.fake.Seed("Records", studentHeaders, []string{"Ann", "A", "ann@example.com"})

	rec := ts.do(t, http.MethodGet, "/api/export/students?format=csv", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "students_") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	want := "Name,Grade,Email\nAnn,A,ann@example.com\n"
	if rec.Body.String() != want {
		t.Errorf("body = %q, want %q", rec.Body.String(), want)
	}

	if rec := ts.do(t, http.MethodGet, "/api/export/students?format=pdf", nil); rec.Code != http.StatusBadRequest {
		t.Errorf("unsupported format status = %d, want 400", rec.Code)
	}
}

func TestImport(t *testing.T) {
	ts := newTestServer(t)

	f := excelize.NewFile()
	rows := [][]any{{"email", "NAME", "Grade"}, {"cy@example.com", "Cy", "B"}}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("SetSheetRow: %v", err)
		}
	}
	var xlsx bytes.Buffer
	if err := f.Write(&xlsx); err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	upload := func(path string) *httptest.ResponseRecorder {
		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		part, err := mw.CreateFormFile("file", "students.xlsx")
		if err != nil {
			t.Fatal(err)
		}
		part.Write(xlsx.Bytes())
		mw.Close()

		req := httptest.NewRequest(http.MethodPost, path, &body)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		rec := httptest.NewRecorder()
		ts.srv.Router().ServeHTTP(rec, req)
		return rec
	}

	rec := upload("/api/import/students")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	got := ts.fake.Rows("Records")
	if len(got) != 1 || strings.Join(got[0], "|") != "Cy|B|cy@example.com" {
		t.Errorf("imported rows = %v", got)
	}

	rec = upload("/api/import/items")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("items import status = %d, want 400", rec.Code)
	}
	if code := decode[mutationBody](t, rec).Code; code != "COL002" {
		t.Errorf("code = %q, want COL002", code)
	}
}

func TestSheetFailureMapsToBadGateway(t *testing.T) {
	ts := newTestServer(t)
	ts.fake.FailNext(sheet.FnReadAll, "Customers", http.StatusInternalServerError)

	rec := ts.do(t, http.MethodGet, "/api/customers", nil)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
	if code := decode[ErrorResponse](t, rec).Code; code != "SHEET002" {
		t.Errorf("code = %q, want SHEET002", code)
	}
}

func TestPages(t *testing.T) {
	ts := newTestServer(t)
	ts.fake.Seed("Customers", customerHeaders,
		[]string{"CUST-1", "Acme", "Jane", "1", "2024-05-01", "Main St", "ITEM-1-0"},
	)
	ts.fake.Seed("Items", itemHeaders,
		[]string{"ITEM-1-0", "W-1", "Widget", "2", "25", "50", "CUST-1"},
	)

	tests := []struct {
		path string
		want []string
	}{
		{"/", []string{"Acme", `data-href="/customers/1"`, "New customer"}},
		{"/?search=nobody", []string{"No matching customers found."}},
		{"/customers/1", []string{"Widget", "data-delete", `data-url="/api/customers/1"`}},
		{"/students", []string{"No matching students found.", "Import from Excel"}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := ts.do(t, http.MethodGet, tt.path, nil)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d", rec.Code)
			}
			for _, w := range tt.want {
				if !strings.Contains(rec.Body.String(), w) {
					t.Errorf("page missing %q", w)
				}
			}
		})
	}

	rec := ts.do(t, http.MethodGet, "/customers/9", nil)
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "SHEET004") {
		t.Errorf("missing record page: status %d body %s", rec.Code, rec.Body.String())
	}
}

func TestCustomerPage_KeepsStoredDate(t *testing.T) {
	ts := newTestServer(t)
	ts.fake.Seed("Customers", customerHeaders,
		[]string{"CUST-1", "Acme", "Jane", "1", "2024-01-01T00:00:00.000Z", "Main St", ""},
	)

	rec := ts.do(t, http.MethodGet, "/customers/1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	want := `<input type="text" data-field="date" value="2024-01-01T00:00:00.000Z"`
	if !strings.Contains(rec.Body.String(), want) {
		t.Errorf("page missing %s", want)
	}

	rec = ts.do(t, http.MethodPut, "/api/customers/1", map[string]any{
		"rows": 1,
		"original": map[string]string{
			"Customer ID": "CUST-1", "Customer Name": "Acme", "Contact Name": "Jane",
			"Contact Number": "1", "date": "2024-01-01T00:00:00.000Z", "Address": "Main St", "Item ID's": "",
		},
		"fields": map[string]string{"Contact Name": "Joan", "date": "2024-01-01T00:00:00.000Z"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d: %s", rec.Code, rec.Body.String())
	}
	if row := ts.fake.Rows("Customers")[0]; row[2] != "Joan" || row[4] != "2024-01-01T00:00:00.000Z" {
		t.Errorf("row after update = %v", row)
	}
}

func TestHealthAndCollections(t *testing.T) {
	ts := newTestServer(t)

	if rec := ts.do(t, http.MethodGet, "/healthz", nil); rec.Code != http.StatusOK {
		t.Errorf("healthz status = %d", rec.Code)
	}

	rec := ts.do(t, http.MethodGet, "/api/collections", nil)
	infos := decode[[]core.CollectionInfo](t, rec)
	if len(infos) != 3 {
		t.Errorf("collections = %+v, want 3", infos)
	}

	if rec := ts.do(t, http.MethodGet, "/metrics", nil); rec.Code != http.StatusOK {
		t.Errorf("metrics status = %d", rec.Code)
	}
}

func TestSecurityHeaders(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/healthz", nil)
	for _, h := range []string{"X-Content-Type-Options", "X-Frame-Options", "Content-Security-Policy"} {
		if rec.Header().Get(h) == "" {
			t.Errorf("header %s missing", h)
		}
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{core.ErrBusy, http.StatusConflict},
		{&sheet.StaleHandleError{Collection: "Customers", Handle: 1}, http.StatusConflict},
		{&core.ValidationError{Kind: core.RequiredField, Field: "x"}, http.StatusBadRequest},
		{core.ErrUnknownCollection, http.StatusNotFound},
		{&sheet.StatusError{Op: "ReadAll", Code: 500}, http.StatusBadGateway},
		{sheet.ErrDecode, http.StatusBadGateway},
		{bytes.ErrTooLarge, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
