// Package geovictoria talks to the GeoVictoria customer API, the external
// time/attendance and payroll system. It turns the raw attendance book for an
// employee period into the portal's per-day records, including the overtime
// candidates computed from clock marks against the theoretical shift.
package geovictoria

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Charlydk/Portal-GTR-sub000/hhee"
	"github.com/Charlydk/Portal-GTR-sub000/timeutil"
)

const (
	loginPath      = "/api/v1/Login"
	attendancePath = "/api/v1/AttendanceBook"

	// GeoVictoria timestamps look like 20250610093000.
	gvTimestamp = "20060102150405"
)

type Client struct {
	baseURL    string
	user       string
	password   string
	httpClient *http.Client
}

func NewClient(baseURL, user, password string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		user:       user,
		password:   password,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type loginResponse struct {
	Token string `json:"token"`
}

type punch struct {
	Date           string `json:"Date"`
	ShiftPunchType string `json:"ShiftPunchType"`
}

type shift struct {
	StartTime string `json:"StartTime"`
	ExitTime  string `json:"ExitTime"`
}

type plannedInterval struct {
	Date                     string  `json:"Date"`
	Punches                  []punch `json:"Punches"`
	Shifts                   []shift `json:"Shifts"`
	AuthorizedOvertimeBefore string  `json:"AuthorizedOvertimeBefore"`
	AuthorizedOvertimeAfter  string  `json:"AuthorizedOvertimeAfter"`
}

type attendanceUser struct {
	Name             string            `json:"Name"`
	LastName         string            `json:"LastName"`
	GroupDescription string            `json:"GroupDescription"`
	PlannedInterval  []plannedInterval `json:"PlannedInterval"`
}

type attendanceResponse struct {
	Users []attendanceUser `json:"Users"`
}

// Login obtains a bearer token for subsequent calls.
func (c *Client) Login(ctx context.Context) (string, error) {
	body := map[string]string{"User": c.user, "Password": c.password}
	var res loginResponse
	if err := c.post(ctx, loginPath, "", body, &res); err != nil {
		return "", fmt.Errorf("geovictoria login: %w", err)
	}
	if res.Token == "" {
		return "", fmt.Errorf("geovictoria login: empty token")
	}
	return res.Token, nil
}

// EmployeePeriod implements hhee.AttendanceProvider: it fetches the
// attendance book for one employee and derives one DayRecord per calendar
// day of the period, whether or not GeoVictoria planned anything for it.
func (c *Client) EmployeePeriod(ctx context.Context, rut string, start, end time.Time) (*hhee.PeriodResult, error) {
	token, err := c.Login(ctx)
	if err != nil {
		return nil, err
	}

	payload := map[string]string{
		"StartDate": start.Format("20060102") + "000000",
		"EndDate":   end.Format("20060102") + "235959",
		"UserIds":   CleanRUT(rut),
	}
	var res attendanceResponse
	if err := c.post(ctx, attendancePath, token, payload, &res); err != nil {
		return nil, fmt.Errorf("geovictoria attendance book: %w", err)
	}
	if len(res.Users) == 0 {
		return nil, fmt.Errorf("%w: %s", hhee.ErrEmployeeNotFound, rut)
	}

	user := res.Users[0]
	name := strings.TrimSpace(user.Name + " " + user.LastName)

	intervals := make(map[string]plannedInterval, len(user.PlannedInterval))
	for _, iv := range user.PlannedInterval {
		ts, err := time.Parse(gvTimestamp, iv.Date)
		if err != nil {
			continue
		}
		intervals[ts.Format("2006-01-02")] = iv
	}

	result := &hhee.PeriodResult{RUT: rut, EmployeeName: name}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		date := d.Format("2006-01-02")
		day := &hhee.DayRecord{
			Date:         date,
			EmployeeName: name,
			Campaign:     user.GroupDescription,
			State:        hhee.StateNotSaved,
		}
		if iv, ok := intervals[date]; ok {
			fillFromInterval(day, iv)
		}
		result.Days = append(result.Days, day)
	}
	return result, nil
}

func fillFromInterval(day *hhee.DayRecord, iv plannedInterval) {
	if len(iv.Shifts) > 0 {
		day.TheoreticalStart = iv.Shifts[0].StartTime
		day.TheoreticalEnd = iv.Shifts[0].ExitTime
	}
	day.ClockIn, day.ClockOut = marksOf(iv.Punches)
	day.AuthorizedBefore = decimalOrZero(iv.AuthorizedOvertimeBefore)
	day.AuthorizedAfter = decimalOrZero(iv.AuthorizedOvertimeAfter)

	if day.IsRestDay() {
		day.CalculatedRest = spanHours(day.ClockIn, day.ClockOut)
		return
	}
	day.CalculatedBefore = spanHours(day.ClockIn, day.TheoreticalStart)
	day.CalculatedAfter = spanHours(day.TheoreticalEnd, day.ClockOut)
}

// marksOf picks the earliest entry and the latest exit punch of the day.
func marksOf(punches []punch) (in, out string) {
	var first, last time.Time
	for _, p := range punches {
		ts, err := time.Parse(gvTimestamp, p.Date)
		if err != nil {
			continue
		}
		switch p.ShiftPunchType {
		case "Entrada":
			if first.IsZero() || ts.Before(first) {
				first = ts
			}
		case "Salida":
			if last.IsZero() || ts.After(last) {
				last = ts
			}
		}
	}
	if !first.IsZero() {
		in = first.Format("15:04")
	}
	if !last.IsZero() {
		out = last.Format("15:04")
	}
	return in, out
}

// spanHours returns the positive distance in fractional hours from one clock
// time to a later one, or 0 when either mark is missing or the order is not
// strictly from..to. Overtime candidates are never negative.
func spanHours(from, to string) float64 {
	if from == "" || to == "" {
		return 0
	}
	a, err := timeutil.ToFractionalHours(from)
	if err != nil {
		return 0
	}
	b, err := timeutil.ToFractionalHours(to)
	if err != nil {
		return 0
	}
	if b <= a {
		return 0
	}
	return b - a
}

func decimalOrZero(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := timeutil.ToFractionalHours(s)
	if err != nil {
		return 0
	}
	return v
}

// CleanRUT normalizes a Chilean RUT to the bare form the API expects:
// no dots, no dash, uppercase check digit.
func CleanRUT(rut string) string {
	r := strings.NewReplacer(".", "", "-", "")
	return strings.ToUpper(r.Replace(strings.TrimSpace(rut)))
}

func (c *Client) post(ctx context.Context, path, token string, body, out any) error {
	buf, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(buf))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s returned status %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
