// Package http exposes the employee and attendance API.
//
// Every route lives under /api:
//   - GET /api/employees, POST /api/employees: list and create employees. The
//     list is also available as a workbook with ?format=xlsx.
//   - GET /api/employees/{employeeId}, DELETE /api/employees/{employeeId}: fetch
//     or remove one employee. Removal takes the employee's attendance with it.
//   - POST /api/attendance: mark an employee Present or Absent on a date. A second
//     mark for the same employee and date overwrites the first.
//   - GET /api/attendance/{employeeId}: one employee's attendance, newest date first.
//   - GET /api/attendance/date/{date}: everyone's attendance on a date (?format=xlsx
//     for a workbook).
//   - GET /api/attendance/summary?date=YYYY-MM-DD: headcount for a date, today (UTC)
//     when omitted.
//   - GET /api/health: liveness plus a storage ping.
//
// Responses use the envelope defined in responder.go:
// {"success","message","data","error","errors"}. Unknown routes answer 404 with
// the same envelope.
package http
