package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/workflow-erp/internal/domain/attendance"
	"github.com/cmlabs-hris/workflow-erp/internal/domain/employee"
	"github.com/cmlabs-hris/workflow-erp/internal/domain/user"
	"github.com/cmlabs-hris/workflow-erp/internal/pkg/database"
	"github.com/cmlabs-hris/workflow-erp/internal/pkg/jwt"
	"github.com/cmlabs-hris/workflow-erp/internal/pkg/report"
	"github.com/cmlabs-hris/workflow-erp/internal/pkg/timeofday"
)

type AttendanceServiceImpl struct {
	tx             database.Transactor
	attendanceRepo attendance.AttendanceRepository
	breakRepo      attendance.BreakRepository
	employeeRepo   employee.EmployeeRepository
	now            func() time.Time
}

func NewAttendanceService(
	tx database.Transactor,
	attendanceRepo attendance.AttendanceRepository,
	breakRepo attendance.BreakRepository,
	employeeRepo employee.EmployeeRepository,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		tx:             tx,
		attendanceRepo: attendanceRepo,
		breakRepo:      breakRepo,
		employeeRepo:   employeeRepo,
		now:            time.Now,
	}
}

// timePtrToString safely converts a *time.Time to an RFC 3339 string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format(time.RFC3339)
	return &format
}

func toBreakResponse(b attendance.Break, now time.Time) attendance.BreakResponse {
	return attendance.BreakResponse{
		ID:           b.ID,
		AttendanceID: b.AttendanceID,
		BreakStart:   b.BreakStart.Format(time.RFC3339),
		BreakEnd:     timePtrToString(b.BreakEnd),
		Duration:     timeofday.FormatSpan(b.BreakStart, b.BreakEnd, now),
	}
}

func toAttendanceResponse(rec attendance.Attendance, now time.Time) attendance.AttendanceResponse {
	breaks := make([]attendance.BreakResponse, 0, len(rec.Breaks))
	for _, b := range rec.Breaks {
		breaks = append(breaks, toBreakResponse(b, now))
	}
	return attendance.AttendanceResponse{
		ID:           rec.ID,
		EmployeeID:   rec.EmployeeID,
		EmployeeName: rec.EmployeeName,
		Date:         timeofday.DateKey(rec.CheckIn),
		CheckIn:      rec.CheckIn.Format(time.RFC3339),
		CheckOut:     timePtrToString(rec.CheckOut),
		Breaks:       breaks,
		IsOpen:       rec.IsOpen(),
		WorkedHours:  FormatWorkedHours(rec, now),
		BreakHours:   timeofday.FormatHours(BreakDuration(rec.Breaks, now)),
		Worked:       timeofday.FormatDuration(WorkedDuration(rec, now)),
	}
}

// resolveEmployeeID pins employees to themselves; managers may name anyone
// and default to their own record.
func resolveEmployeeID(actor user.Actor, requested string) (string, error) {
	if actor.IsEmployee() {
		if actor.EmployeeID == "" {
			return "", user.ErrEmployeeNotLinked
		}
		return actor.EmployeeID, nil
	}
	if requested != "" {
		return requested, nil
	}
	if actor.EmployeeID != "" {
		return actor.EmployeeID, nil
	}
	return "", attendance.ErrEmployeeIDRequired
}

// parseOverride reads a manager-supplied timestamp; employees always get now.
func parseOverride(actor user.Actor, value string, now time.Time) (time.Time, bool, error) {
	if actor.IsEmployee() || value == "" {
		return now, false, nil
	}
	t, err := timeofday.ParseAdminTime(value, now)
	if err != nil {
		return time.Time{}, false, attendance.ErrInvalidTimeOverride
	}
	return t, true, nil
}

// localDayBounds returns the start of t's local day and of the next one.
func localDayBounds(t time.Time) (time.Time, time.Time) {
	loc := timeofday.Location()
	local := t.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	employeeID, err := resolveEmployeeID(actor, req.EmployeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := s.now()
	checkIn, _, err := parseOverride(actor, req.CheckInAt, now)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if checkIn.After(now) {
		return attendance.AttendanceResponse{}, attendance.ErrCheckInInFuture
	}

	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return attendance.AttendanceResponse{}, employee.ErrEmployeeNotFound
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	if _, err := s.CloseExpired(ctx, &employeeID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	var created attendance.Attendance
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		_, err := s.attendanceRepo.GetOpenSession(txCtx, employeeID)
		if err == nil {
			return attendance.ErrOpenAttendanceExists
		}
		if !errors.Is(err, attendance.ErrOpenAttendanceNotFound) {
			return fmt.Errorf("failed to get open attendance: %w", err)
		}

		if actor.IsEmployee() {
			dayStart, dayEnd := localDayBounds(checkIn)
			count, err := s.attendanceRepo.CountCheckInsBetween(txCtx, employeeID, dayStart, dayEnd)
			if err != nil {
				return fmt.Errorf("failed to count check-ins: %w", err)
			}
			if count > 0 {
				return attendance.ErrAlreadyCheckedIn
			}
		}

		created, err = s.attendanceRepo.Create(txCtx, attendance.Attendance{
			EmployeeID: employeeID,
			CheckIn:    checkIn,
		})
		if err != nil {
			return fmt.Errorf("failed to create attendance: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	slog.Info("checked in", "attendance_id", created.ID, "employee_id", employeeID, "by", actor.UserID)
	return toAttendanceResponse(created, now), nil
}

// findAttendance resolves the record a self-service action targets: the
// given attendance ID, else the employee's open session.
func (s *AttendanceServiceImpl) findAttendance(ctx context.Context, actor user.Actor, attendanceID, employeeID string) (attendance.Attendance, error) {
	if attendanceID != "" {
		rec, err := s.attendanceRepo.GetByID(ctx, attendanceID)
		if err != nil {
			if errors.Is(err, attendance.ErrAttendanceNotFound) {
				return attendance.Attendance{}, attendance.ErrAttendanceNotFound
			}
			return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
		}
		if actor.IsEmployee() && rec.EmployeeID != actor.EmployeeID {
			return attendance.Attendance{}, attendance.ErrForbidden
		}
		return rec, nil
	}

	employeeID, err := resolveEmployeeID(actor, employeeID)
	if err != nil {
		return attendance.Attendance{}, err
	}
	rec, err := s.attendanceRepo.GetOpenSession(ctx, employeeID)
	if err != nil {
		if errors.Is(err, attendance.ErrOpenAttendanceNotFound) {
			return attendance.Attendance{}, attendance.ErrOpenAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get open attendance: %w", err)
	}
	return rec, nil
}

// CheckOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := s.now()
	checkOut, _, err := parseOverride(actor, req.CheckOutAt, now)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if checkOut.After(now) {
		return attendance.AttendanceResponse{}, attendance.ErrCheckOutInFuture
	}

	var closed attendance.Attendance
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		rec, err := s.findAttendance(txCtx, actor, req.AttendanceID, req.EmployeeID)
		if err != nil {
			return err
		}
		if !rec.IsOpen() {
			return attendance.ErrAlreadyCheckedOut
		}
		if checkOut.Before(rec.CheckIn) {
			return attendance.ErrCheckOutBeforeCheckIn
		}
		if shiftCap := rec.ShiftCap(); checkOut.After(shiftCap) {
			checkOut = shiftCap
		}

		if err := s.closeSession(txCtx, rec.ID, checkOut); err != nil {
			return err
		}

		closed, err = s.attendanceRepo.GetByID(txCtx, rec.ID)
		if err != nil {
			return fmt.Errorf("failed to reload attendance: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	slog.Info("checked out", "attendance_id", closed.ID, "employee_id", closed.EmployeeID, "by", actor.UserID)
	return toAttendanceResponse(closed, now), nil
}

// closeSession ends open breaks, clamps late break ends and stores the check-out.
func (s *AttendanceServiceImpl) closeSession(ctx context.Context, attendanceID string, at time.Time) error {
	if err := s.breakRepo.CloseActive(ctx, attendanceID, at); err != nil {
		return fmt.Errorf("failed to close active breaks: %w", err)
	}
	if err := s.breakRepo.ClampEnds(ctx, attendanceID, at); err != nil {
		return fmt.Errorf("failed to clamp break ends: %w", err)
	}
	if err := s.attendanceRepo.Close(ctx, attendanceID, at); err != nil {
		return fmt.Errorf("failed to close attendance: %w", err)
	}
	return nil
}

// StartBreak implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) StartBreak(ctx context.Context, req attendance.BreakRequest) (attendance.BreakResponse, error) {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return attendance.BreakResponse{}, err
	}
	now := s.now()

	var created attendance.Break
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		rec, err := s.findAttendance(txCtx, actor, req.AttendanceID, req.EmployeeID)
		if err != nil {
			return err
		}
		if !rec.IsOpen() {
			return attendance.ErrAlreadyCheckedOut
		}
		if _, active := ActiveBreak(rec); active {
			return attendance.ErrBreakAlreadyActive
		}

		start := now
		if start.Before(rec.CheckIn) {
			start = rec.CheckIn
		}
		if shiftCap := rec.ShiftCap(); start.After(shiftCap) {
			start = shiftCap
		}

		created, err = s.breakRepo.Create(txCtx, attendance.Break{
			AttendanceID: rec.ID,
			BreakStart:   start,
		})
		if err != nil {
			return fmt.Errorf("failed to create break: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.BreakResponse{}, err
	}

	return toBreakResponse(created, now), nil
}

// EndBreak implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) EndBreak(ctx context.Context, req attendance.BreakRequest) (attendance.BreakResponse, error) {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return attendance.BreakResponse{}, err
	}
	now := s.now()

	var ended attendance.Break
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		rec, err := s.findAttendance(txCtx, actor, req.AttendanceID, req.EmployeeID)
		if err != nil {
			return err
		}

		active, err := s.breakRepo.GetActive(txCtx, rec.ID)
		if err != nil {
			if errors.Is(err, attendance.ErrNoActiveBreak) {
				return attendance.ErrNoActiveBreak
			}
			return fmt.Errorf("failed to get active break: %w", err)
		}

		end := now
		if end.Before(active.BreakStart) {
			end = active.BreakStart
		}
		if err := s.breakRepo.End(txCtx, active.ID, end); err != nil {
			return fmt.Errorf("failed to end break: %w", err)
		}

		active.BreakEnd = &end
		ended = active
		return nil
	})
	if err != nil {
		return attendance.BreakResponse{}, err
	}

	return toBreakResponse(ended, now), nil
}

// AddManualBreak implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) AddManualBreak(ctx context.Context, req attendance.ManualBreakRequest) (attendance.BreakResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.BreakResponse{}, err
	}

	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return attendance.BreakResponse{}, err
	}
	if !actor.CanManage() {
		return attendance.BreakResponse{}, user.ErrManagerAccessRequired
	}

	now := s.now()
	start, err := timeofday.ParseAdminTime(req.BreakStartAt, now)
	if err != nil {
		return attendance.BreakResponse{}, attendance.ErrInvalidTimeOverride
	}
	end, err := timeofday.ParseAdminTime(req.BreakEndAt, now)
	if err != nil {
		return attendance.BreakResponse{}, attendance.ErrInvalidTimeOverride
	}
	if !end.After(start) {
		return attendance.BreakResponse{}, attendance.ErrBreakEndBeforeStart
	}

	var created attendance.Break
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		rec, err := s.attendanceRepo.GetByID(txCtx, req.AttendanceID)
		if err != nil {
			if errors.Is(err, attendance.ErrAttendanceNotFound) {
				return attendance.ErrAttendanceNotFound
			}
			return fmt.Errorf("failed to get attendance: %w", err)
		}

		if start.Before(rec.CheckIn) {
			return attendance.ErrBreakBeforeCheckIn
		}
		limit := now
		if rec.CheckOut != nil {
			limit = *rec.CheckOut
		}
		if end.After(limit) {
			return attendance.ErrBreakAfterShiftEnd
		}

		for _, b := range rec.Breaks {
			if b.IsActive() {
				return attendance.ErrActiveBreakExists
			}
			if b.Overlaps(start, end) {
				return attendance.ErrBreakOverlaps
			}
		}

		created, err = s.breakRepo.Create(txCtx, attendance.Break{
			AttendanceID: rec.ID,
			BreakStart:   start,
			BreakEnd:     &end,
		})
		if err != nil {
			return fmt.Errorf("failed to create break: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.BreakResponse{}, err
	}

	slog.Info("manual break added", "attendance_id", req.AttendanceID, "break_id", created.ID, "by", actor.UserID)
	return toBreakResponse(created, now), nil
}

// load returns the records visible to the caller matching req, after
// closing sessions that outlived the shift cap.
func (s *AttendanceServiceImpl) load(ctx context.Context, req attendance.ListAttendanceRequest) ([]attendance.Attendance, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	filter := attendance.Filter{EmployeeID: req.EmployeeID}
	if actor.IsEmployee() {
		if actor.EmployeeID == "" {
			return nil, user.ErrEmployeeNotLinked
		}
		filter.EmployeeID = actor.EmployeeID
	}
	filter.From, filter.To = attendance.NormalizeRange(req.From, req.To)

	// Storage bounds are whole local days; the exact cut is ApplyFilter's.
	if filter.From != "" {
		if from, err := time.ParseInLocation(timeofday.DateKeyLayout, filter.From, timeofday.Location()); err == nil {
			filter.CheckInAfter = &from
		}
	}
	if filter.To != "" {
		if to, err := time.ParseInLocation(timeofday.DateKeyLayout, filter.To, timeofday.Location()); err == nil {
			next := to.AddDate(0, 0, 1)
			filter.CheckInBefore = &next
		}
	}

	var scope *string
	if filter.EmployeeID != "" {
		scope = &filter.EmployeeID
	}
	if _, err := s.CloseExpired(ctx, scope); err != nil {
		return nil, err
	}

	records, err := s.attendanceRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return SortByCheckInDesc(ApplyFilter(records, filter)), nil
}

// List implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) List(ctx context.Context, req attendance.ListAttendanceRequest) ([]attendance.AttendanceResponse, error) {
	records, err := s.load(ctx, req)
	if err != nil {
		return nil, err
	}

	now := s.now()
	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, toAttendanceResponse(rec, now))
	}
	return responses, nil
}

func (s *AttendanceServiceImpl) dayGroups(records []attendance.Attendance, now time.Time) []attendance.DayGroupResponse {
	groups := GroupByEmployeeDate(records)
	responses := make([]attendance.DayGroupResponse, 0, len(groups))
	for _, g := range groups {
		recs := make([]attendance.AttendanceResponse, 0, len(g.Records))
		for _, rec := range g.Records {
			recs = append(recs, toAttendanceResponse(rec, now))
		}
		responses = append(responses, attendance.DayGroupResponse{
			EmployeeID: g.EmployeeID,
			Date:       g.DateKey,
			Label:      timeofday.FormatDateLabel(g.DateKey),
			TotalHours: timeofday.FormatHours(TotalWorked(g.Records, now)),
			Records:    recs,
		})
	}
	return responses
}

// ListByDay implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListByDay(ctx context.Context, req attendance.ListAttendanceRequest) ([]attendance.DayGroupResponse, error) {
	records, err := s.load(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.dayGroups(records, s.now()), nil
}

// Summary implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Summary(ctx context.Context, req attendance.ListAttendanceRequest) ([]attendance.EmployeeSummaryResponse, error) {
	records, err := s.load(ctx, req)
	if err != nil {
		return nil, err
	}

	now := s.now()
	rows := Summarize(records, now)
	responses := make([]attendance.EmployeeSummaryResponse, 0, len(rows))
	for _, row := range rows {
		resp := attendance.EmployeeSummaryResponse{
			EmployeeID:     row.EmployeeID,
			EmployeeName:   row.EmployeeName,
			LatestCheckIn:  row.Latest.CheckIn.Format(time.RFC3339),
			CheckedInToday: row.CheckedInToday,
			WorkedHours:    timeofday.FormatHours(row.Worked),
			BreakHours:     timeofday.FormatHours(row.Breaks),
			RecordCount:    row.RecordCount,
		}
		if row.OpenSession != nil {
			open := toAttendanceResponse(*row.OpenSession, now)
			resp.OpenSession = &open
		}
		if row.ActiveBreak != nil {
			active := toBreakResponse(*row.ActiveBreak, now)
			resp.ActiveBreak = &active
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

// Timesheet implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Timesheet(ctx context.Context, req attendance.ListAttendanceRequest) ([]byte, error) {
	records, err := s.load(ctx, req)
	if err != nil {
		return nil, err
	}

	now := s.now()
	sheet := report.Timesheet{
		From:        req.From,
		To:          req.To,
		GeneratedAt: now,
	}
	for _, g := range GroupByEmployeeDate(records) {
		for _, rec := range g.Records {
			checkOut := "-"
			if rec.CheckOut != nil {
				checkOut = timeofday.FormatTimestamp(*rec.CheckOut)
			}
			sheet.Rows = append(sheet.Rows, report.TimesheetRow{
				Date:     timeofday.FormatDateLabel(g.DateKey),
				Employee: DisplayName(rec.EmployeeID, rec.EmployeeName),
				CheckIn:  timeofday.FormatTimestamp(rec.CheckIn),
				CheckOut: checkOut,
				Breaks:   timeofday.FormatDuration(BreakDuration(rec.Breaks, now)),
				Worked:   FormatWorkedHours(rec, now),
			})
		}
	}
	sheet.TotalHours = timeofday.FormatHours(TotalWorked(records, now))

	pdf, err := report.RenderTimesheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to render timesheet: %w", err)
	}
	return pdf, nil
}

// Delete implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Delete(ctx context.Context, id string) error {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return err
	}
	if !actor.CanManage() {
		return user.ErrManagerAccessRequired
	}

	if err := s.attendanceRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.ErrAttendanceNotFound
		}
		return fmt.Errorf("failed to delete attendance: %w", err)
	}

	slog.Info("attendance deleted", "attendance_id", id, "by", actor.UserID)
	return nil
}

// DeleteByEmployee implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) DeleteByEmployee(ctx context.Context, employeeID string) (attendance.DeleteByEmployeeResponse, error) {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return attendance.DeleteByEmployeeResponse{}, err
	}
	if !actor.CanManage() {
		return attendance.DeleteByEmployeeResponse{}, user.ErrManagerAccessRequired
	}
	if employeeID == "" {
		return attendance.DeleteByEmployeeResponse{}, attendance.ErrEmployeeIDRequired
	}

	deleted, err := s.attendanceRepo.DeleteByEmployee(ctx, employeeID)
	if err != nil {
		return attendance.DeleteByEmployeeResponse{}, fmt.Errorf("failed to delete attendance: %w", err)
	}

	slog.Info("attendance deleted for employee", "employee_id", employeeID, "deleted", deleted, "by", actor.UserID)
	return attendance.DeleteByEmployeeResponse{Deleted: deleted}, nil
}

// CloseExpired implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CloseExpired(ctx context.Context, employeeID *string) (int, error) {
	now := s.now()
	cutoff := now.Add(-attendance.MaxShiftHours * time.Hour)

	stale, err := s.attendanceRepo.ListStaleOpen(ctx, cutoff, employeeID)
	if err != nil {
		return 0, fmt.Errorf("failed to list stale attendance: %w", err)
	}

	closed := 0
	for _, rec := range stale {
		if !rec.Expired(now) {
			continue
		}
		shiftCap := rec.ShiftCap()
		err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
			return s.closeSession(txCtx, rec.ID, shiftCap)
		})
		if err != nil {
			return closed, err
		}
		closed++
		slog.Info("auto-closed attendance", "attendance_id", rec.ID, "employee_id", rec.EmployeeID, "check_out", shiftCap)
	}
	return closed, nil
}
