package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"team-planning/internal/models"
	"time"

	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Worksheet names and layouts shared with the historical spreadsheet.
// Row 1 of each worksheet is a header.
const (
	planningSheet = "planning" // date | membre | statut | note
	requestsSheet = "conges"   // nom | type | debut | fin | motif | horodatage | id

	sheetTimestampLayout = "02/01/2006 15:04"
)

type SheetsClient struct {
	srv           *sheets.Service
	spreadsheetID string

	mu       sync.Mutex
	sheetIDs map[string]int64
}

func NewSheetsClient(ctx context.Context, spreadsheetID, credentialsFile string) (*SheetsClient, error) {
	srv, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	c := &SheetsClient{srv: srv, spreadsheetID: spreadsheetID}
	if _, err := c.sheetID(ctx, planningSheet); err != nil {
		return nil, err
	}
	if _, err := c.sheetID(ctx, requestsSheet); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *SheetsClient) values(ctx context.Context, rng string) ([][]interface{}, error) {
	resp, err := c.srv.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", rng, err)
	}
	return resp.Values, nil
}

func (c *SheetsClient) appendRows(ctx context.Context, rng string, rows [][]interface{}) error {
	_, err := c.srv.Spreadsheets.Values.Append(c.spreadsheetID, rng, &sheets.ValueRange{Values: rows}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to append to %s: %w", rng, err)
	}
	return nil
}

// deleteRow removes the zero-based row index of the named worksheet.
func (c *SheetsClient) deleteRow(ctx context.Context, sheet string, rowIndex int64) error {
	id, err := c.sheetID(ctx, sheet)
	if err != nil {
		return err
	}

	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			DeleteDimension: &sheets.DeleteDimensionRequest{
				Range: &sheets.DimensionRange{
					SheetId:    id,
					Dimension:  "ROWS",
					StartIndex: rowIndex,
					EndIndex:   rowIndex + 1,
				},
			},
		}},
	}
	if _, err := c.srv.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to delete row %d of %s: %w", rowIndex, sheet, err)
	}
	return nil
}

func (c *SheetsClient) sheetID(ctx context.Context, title string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if id, ok := c.sheetIDs[title]; ok {
		return id, nil
	}

	ss, err := c.srv.Spreadsheets.Get(c.spreadsheetID).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("failed to open spreadsheet: %w", err)
	}

	c.sheetIDs = make(map[string]int64, len(ss.Sheets))
	for _, sh := range ss.Sheets {
		c.sheetIDs[sh.Properties.Title] = sh.Properties.SheetId
	}

	id, ok := c.sheetIDs[title]
	if !ok {
		return 0, fmt.Errorf("worksheet %q not found", title)
	}
	return id, nil
}

// SheetsPlanningRepository appends one row per write; the last row for a
// (date, member) pair wins on read.
type SheetsPlanningRepository struct {
	client *SheetsClient
	logger *logrus.Logger
}

func NewSheetsPlanningRepository(client *SheetsClient) *SheetsPlanningRepository {
	return &SheetsPlanningRepository{client: client, logger: logrus.New()}
}

func (r *SheetsPlanningRepository) GetRange(ctx context.Context, from, to string) (models.PlanningMap, error) {
	rows, err := r.client.values(ctx, planningSheet+"!A2:D")
	if err != nil {
		return nil, err
	}
	return parsePlanningRows(rows, from, to), nil
}

func (r *SheetsPlanningRepository) Upsert(ctx context.Context, days []models.DayStatus) error {
	if len(days) == 0 {
		return nil
	}
	if err := r.client.appendRows(ctx, planningSheet+"!A:D", planningRows(days)); err != nil {
		return err
	}
	r.logger.WithField("count", len(days)).Debug("Planning rows appended")
	return nil
}

type SheetsLeaveRequestRepository struct {
	client *SheetsClient
}

func NewSheetsLeaveRequestRepository(client *SheetsClient) *SheetsLeaveRequestRepository {
	return &SheetsLeaveRequestRepository{client: client}
}

func (r *SheetsLeaveRequestRepository) Create(ctx context.Context, req *models.LeaveRequest) error {
	return r.client.appendRows(ctx, requestsSheet+"!A:G", [][]interface{}{requestRow(req)})
}

func (r *SheetsLeaveRequestRepository) GetAll(ctx context.Context) ([]models.LeaveRequest, error) {
	rows, err := r.client.values(ctx, requestsSheet+"!A2:G")
	if err != nil {
		return nil, err
	}
	list, _ := parseRequestRows(rows)
	return list, nil
}

func (r *SheetsLeaveRequestRepository) GetByID(ctx context.Context, id string) (*models.LeaveRequest, error) {
	list, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID == id {
			return &list[i], nil
		}
	}
	return nil, ErrNotFound
}

func (r *SheetsLeaveRequestRepository) Delete(ctx context.Context, id string) error {
	rows, err := r.client.values(ctx, requestsSheet+"!A2:G")
	if err != nil {
		return err
	}
	list, index := parseRequestRows(rows)
	for i := range list {
		if list[i].ID == id {
			// +1 for the header row
			return r.client.deleteRow(ctx, requestsSheet, int64(index[i])+1)
		}
	}
	return ErrNotFound
}

func planningRows(days []models.DayStatus) [][]interface{} {
	rows := make([][]interface{}, 0, len(days))
	for _, d := range days {
		rows = append(rows, []interface{}{d.Date, d.Member, d.Status.Label(), d.Note})
	}
	return rows
}

func parsePlanningRows(rows [][]interface{}, from, to string) models.PlanningMap {
	plan := make(models.PlanningMap)
	for _, row := range rows {
		date := cell(row, 0)
		member := cell(row, 1)
		if date == "" || member == "" || date < from || date > to {
			continue
		}
		status, ok := models.ParseStatus(cell(row, 2))
		if !ok {
			status = models.StatusPresent
		}
		plan.Set(models.DayStatus{Date: date, Member: member, Status: status, Note: cell(row, 3)})
	}
	return plan
}

func requestRow(req *models.LeaveRequest) []interface{} {
	return []interface{}{
		req.Requester,
		req.Kind.Label(),
		req.StartDate,
		req.EndDate,
		req.Reason,
		req.SubmittedAt.Format(sheetTimestampLayout),
		req.ID,
	}
}

// parseRequestRows returns the parsed requests and, for each, the index of
// its source row. Rows without an id column are addressed by position.
func parseRequestRows(rows [][]interface{}) ([]models.LeaveRequest, []int) {
	var list []models.LeaveRequest
	var index []int
	for i, row := range rows {
		requester := cell(row, 0)
		if requester == "" {
			continue
		}
		kind, ok := models.ParseLeaveKind(cell(row, 1))
		if !ok {
			continue
		}

		submitted, _ := time.ParseInLocation(sheetTimestampLayout, cell(row, 5), time.Local)
		id := cell(row, 6)
		if id == "" {
			id = fmt.Sprintf("row-%d", i+2)
		}

		list = append(list, models.LeaveRequest{
			ID:          id,
			Requester:   requester,
			Kind:        kind,
			StartDate:   cell(row, 2),
			EndDate:     cell(row, 3),
			Reason:      cell(row, 4),
			SubmittedAt: submitted,
		})
		index = append(index, i)
	}
	return list, index
}

func cell(row []interface{}, i int) string {
	if i >= len(row) || row[i] == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(row[i]))
}
