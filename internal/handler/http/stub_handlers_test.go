package http

import (
	"net/http"

	"github.com/cmlabs-hris/workflow-erp/internal/handler/http/response"
)

// stubHandler satisfies every handler interface and echoes the method
// that served the request, so routing can be asserted without services.
type stubHandler struct{}

func (stubHandler) serve(w http.ResponseWriter, name string) {
	response.Success(w, map[string]string{"handler": name})
}

func stubHandlers() Handlers {
	s := stubHandler{}
	return Handlers{
		Auth:       s,
		Profile:    s,
		Events:     s,
		Dashboard:  s,
		Settings:   s,
		Employee:   s,
		Invoice:    s,
		Attendance: s,
		Leave:      s,
	}
}

func (s stubHandler) Login(w http.ResponseWriter, r *http.Request)               { s.serve(w, "Login") }
func (s stubHandler) LoginWithGoogle(w http.ResponseWriter, r *http.Request)     { s.serve(w, "LoginWithGoogle") }
func (s stubHandler) OAuthCallbackGoogle(w http.ResponseWriter, r *http.Request) { s.serve(w, "OAuthCallbackGoogle") }
func (s stubHandler) Logout(w http.ResponseWriter, r *http.Request)              { s.serve(w, "Logout") }
func (s stubHandler) RefreshToken(w http.ResponseWriter, r *http.Request)        { s.serve(w, "RefreshToken") }
func (s stubHandler) GetMe(w http.ResponseWriter, r *http.Request)               { s.serve(w, "GetMe") }
func (s stubHandler) UpdateMe(w http.ResponseWriter, r *http.Request)            { s.serve(w, "UpdateMe") }
func (s stubHandler) ChangePassword(w http.ResponseWriter, r *http.Request)      { s.serve(w, "ChangePassword") }
func (s stubHandler) UploadAvatar(w http.ResponseWriter, r *http.Request)        { s.serve(w, "UploadAvatar") }
func (s stubHandler) Token(w http.ResponseWriter, r *http.Request)               { s.serve(w, "Token") }
func (s stubHandler) Stream(w http.ResponseWriter, r *http.Request)              { s.serve(w, "Stream") }
func (s stubHandler) GetDashboard(w http.ResponseWriter, r *http.Request)        { s.serve(w, "GetDashboard") }
func (s stubHandler) GetLogo(w http.ResponseWriter, r *http.Request)             { s.serve(w, "GetLogo") }
func (s stubHandler) UpdateLogo(w http.ResponseWriter, r *http.Request)          { s.serve(w, "UpdateLogo") }
func (s stubHandler) UploadLogo(w http.ResponseWriter, r *http.Request)          { s.serve(w, "UploadLogo") }
func (s stubHandler) ListEmployees(w http.ResponseWriter, r *http.Request)       { s.serve(w, "ListEmployees") }
func (s stubHandler) GetEmployee(w http.ResponseWriter, r *http.Request)         { s.serve(w, "GetEmployee") }
func (s stubHandler) CreateEmployee(w http.ResponseWriter, r *http.Request)      { s.serve(w, "CreateEmployee") }
func (s stubHandler) UpdateEmployee(w http.ResponseWriter, r *http.Request)      { s.serve(w, "UpdateEmployee") }
func (s stubHandler) DeleteEmployee(w http.ResponseWriter, r *http.Request)      { s.serve(w, "DeleteEmployee") }
func (s stubHandler) CreateUser(w http.ResponseWriter, r *http.Request)          { s.serve(w, "CreateUser") }
func (s stubHandler) UpsertUserPassword(w http.ResponseWriter, r *http.Request)  { s.serve(w, "UpsertUserPassword") }
func (s stubHandler) List(w http.ResponseWriter, r *http.Request)                { s.serve(w, "List") }
func (s stubHandler) Get(w http.ResponseWriter, r *http.Request)                 { s.serve(w, "Get") }
func (s stubHandler) Create(w http.ResponseWriter, r *http.Request)              { s.serve(w, "Create") }
func (s stubHandler) Update(w http.ResponseWriter, r *http.Request)              { s.serve(w, "Update") }
func (s stubHandler) Delete(w http.ResponseWriter, r *http.Request)              { s.serve(w, "Delete") }
func (s stubHandler) DownloadPDF(w http.ResponseWriter, r *http.Request)         { s.serve(w, "DownloadPDF") }
func (s stubHandler) CheckIn(w http.ResponseWriter, r *http.Request)             { s.serve(w, "CheckIn") }
func (s stubHandler) CheckOut(w http.ResponseWriter, r *http.Request)            { s.serve(w, "CheckOut") }
func (s stubHandler) StartBreak(w http.ResponseWriter, r *http.Request)          { s.serve(w, "StartBreak") }
func (s stubHandler) EndBreak(w http.ResponseWriter, r *http.Request)            { s.serve(w, "EndBreak") }
func (s stubHandler) AddManualBreak(w http.ResponseWriter, r *http.Request)      { s.serve(w, "AddManualBreak") }
func (s stubHandler) ListByDay(w http.ResponseWriter, r *http.Request)           { s.serve(w, "ListByDay") }
func (s stubHandler) Summary(w http.ResponseWriter, r *http.Request)             { s.serve(w, "Summary") }
func (s stubHandler) Timesheet(w http.ResponseWriter, r *http.Request)           { s.serve(w, "Timesheet") }
func (s stubHandler) DeleteByEmployee(w http.ResponseWriter, r *http.Request)    { s.serve(w, "DeleteByEmployee") }
func (s stubHandler) ListRequests(w http.ResponseWriter, r *http.Request)        { s.serve(w, "ListRequests") }
func (s stubHandler) CreateRequest(w http.ResponseWriter, r *http.Request)       { s.serve(w, "CreateRequest") }
func (s stubHandler) UpdateRequest(w http.ResponseWriter, r *http.Request)       { s.serve(w, "UpdateRequest") }
func (s stubHandler) DeleteRequest(w http.ResponseWriter, r *http.Request)       { s.serve(w, "DeleteRequest") }
func (s stubHandler) ApproveRequest(w http.ResponseWriter, r *http.Request)      { s.serve(w, "ApproveRequest") }
func (s stubHandler) RejectRequest(w http.ResponseWriter, r *http.Request)       { s.serve(w, "RejectRequest") }
func (s stubHandler) MarkPending(w http.ResponseWriter, r *http.Request)         { s.serve(w, "MarkPending") }
func (s stubHandler) ListBalances(w http.ResponseWriter, r *http.Request)        { s.serve(w, "ListBalances") }
func (s stubHandler) GetPolicies(w http.ResponseWriter, r *http.Request)         { s.serve(w, "GetPolicies") }
func (s stubHandler) UpdatePolicies(w http.ResponseWriter, r *http.Request)      { s.serve(w, "UpdatePolicies") }
