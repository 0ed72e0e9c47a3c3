package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/bctala/OPSIGHT/config"
	"github.com/bctala/OPSIGHT/internal/domain"
	"github.com/bctala/OPSIGHT/pkg/logger"
)

// maxConcurrentFlushes bounds the number of event batches written at once
const maxConcurrentFlushes = 2

// requiredColumns must all be present in the CSV header
var requiredColumns = []string{"Session_ID", "Operator_ID", "Timestamp", "Shift"}

// truncationWidths mirrors the varchar widths of the events table, keyed by
// canonical column name
var truncationWidths = map[string]int{
	"Address":             50,
	"FunctionCode":        10,
	"CommandResponse":     50,
	"ControlMode":         50,
	"ControlScheme":       100,
	"PumpState":           50,
	"SolenoidState":       50,
	"Label":               50,
	"InvalidFunctionCode": 5,
	"InvalidDataLength":   5,
}

// columnAliases maps accepted header spellings onto the canonical column
// names of the source capture format. Snake_case exports of the same data
// are accepted alongside the original headers.
var columnAliases = map[string]string{
	"Time_Interval":         "TimeInterval",
	"Function_Code":         "FunctionCode",
	"Command_Response":      "CommandResponse",
	"Control_Mode":          "ControlMode",
	"Control_Scheme":        "ControlScheme",
	"Data_Length":           "DataLength",
	"Invalid_Function_Code": "InvalidFunctionCode",
	"Invalid_Data_Length":   "InvalidDataLength",
	"Pump_State":            "PumpState",
	"Solenoid_State":        "SolenoidState",
	"Set_Point":             "SetPoint",
	"Pipeline_PSI":          "PipelinePSI",
	"PID_Cycle_Time":        "PIDCycleTime",
	"PID_Deadband":          "PIDDeadband",
	"PID_Gain":              "PIDGain",
	"PID_Rate":              "PIDRate",
	"PID_Reset":             "PIDReset",
	"Delta_Set_Point":       "deltaSetPoint",
	"Delta_Pipeline_PSI":    "deltaPipelinePSI",
	"Delta_PID_Cycle_Time":  "deltaPIDCycleTime",
	"Delta_PID_Deadband":    "deltaPIDDeadband",
	"Delta_PID_Gain":        "deltaPIDGain",
	"Delta_PID_Rate":        "deltaPIDRate",
	"Delta_PID_Reset":       "deltaPIDReset",
}

// timestampLayouts are tried in order when parsing the Timestamp column
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// LoaderService streams telemetry CSV files into the events table in chunks
type LoaderService struct {
	eventRepo    domain.EventRepository
	operatorRepo domain.OperatorRepository
	sessionRepo  domain.SessionRepository
	shiftRepo    domain.ShiftRepository
	jobRepo      domain.ImportJobRepository
	settingRepo  domain.SettingRepository
	cfg          config.LoaderConfig
	logger       logger.Logger
}

// LoaderServiceConfig wires the loader's dependencies
type LoaderServiceConfig struct {
	EventRepo    domain.EventRepository
	OperatorRepo domain.OperatorRepository
	SessionRepo  domain.SessionRepository
	ShiftRepo    domain.ShiftRepository
	JobRepo      domain.ImportJobRepository
	SettingRepo  domain.SettingRepository
	Loader       config.LoaderConfig
	Logger       logger.Logger
}

// NewLoaderService creates a new telemetry loader
func NewLoaderService(cfg LoaderServiceConfig) *LoaderService {
	if cfg.Loader.ChunkSize <= 0 {
		cfg.Loader.ChunkSize = 50000
	}
	if cfg.Loader.InactivityThresholdMin <= 0 {
		cfg.Loader.InactivityThresholdMin = 10
	}
	return &LoaderService{
		eventRepo:    cfg.EventRepo,
		operatorRepo: cfg.OperatorRepo,
		sessionRepo:  cfg.SessionRepo,
		shiftRepo:    cfg.ShiftRepo,
		jobRepo:      cfg.JobRepo,
		settingRepo:  cfg.SettingRepo,
		cfg:          cfg.Loader,
		logger:       cfg.Logger,
	}
}

// LoadFile imports a telemetry CSV file, tracking the run as an import job.
// Chunks already committed before a failure stay in place.
func (s *LoaderService) LoadFile(ctx context.Context, path string) (*domain.ImportJob, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	job := &domain.ImportJob{SourceFile: path}
	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, err
	}
	if err := s.jobRepo.MarkRunning(ctx, job.ID); err != nil {
		return nil, err
	}

	counters, err := s.Load(ctx, file)
	if err != nil {
		if failErr := s.jobRepo.MarkFailed(ctx, job.ID, counters, err.Error()); failErr != nil {
			s.logger.WithField("job_id", job.ID).WithField("error", failErr.Error()).Error("Failed to record import failure")
		}
		return job, err
	}

	if err := s.jobRepo.MarkCompleted(ctx, job.ID, counters); err != nil {
		return job, err
	}
	if s.settingRepo != nil {
		if err := s.settingRepo.SetLastImportRun(ctx); err != nil {
			s.logger.WithField("error", err.Error()).Warn("Failed to record last import run")
		}
	}

	job.Status = domain.ImportJobStatusCompleted
	job.RowsRead = counters.RowsRead
	job.OperatorsCreated = counters.OperatorsCreated
	job.SessionsCreated = counters.SessionsCreated
	job.EventsInserted = counters.EventsInserted
	return job, nil
}

// Load streams CSV telemetry from r and imports it chunk by chunk
func (s *LoaderService) Load(ctx context.Context, r io.Reader) (domain.ImportCounters, error) {
	var counters domain.ImportCounters

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return counters, fmt.Errorf("failed to read header: %w", err)
	}

	columns, err := parseHeader(header)
	if err != nil {
		return counters, err
	}

	shiftNameToID, err := s.shiftRepo.NameToID(ctx)
	if err != nil {
		return counters, err
	}

	var mu sync.Mutex
	group, groupCtx := errgroup.WithContext(ctx)
	sem := semaphore.NewWeighted(maxConcurrentFlushes)

	chunk := make([]*parsedRow, 0, s.cfg.ChunkSize)
	chunkIndex := 0

	flushChunk := func(rows []*parsedRow, index int) error {
		created, err := s.ensureChunkRefs(ctx, rows, shiftNameToID)
		if err != nil {
			return err
		}
		mu.Lock()
		counters.OperatorsCreated += created.operators
		counters.SessionsCreated += created.sessions
		mu.Unlock()

		events := make([]*domain.Event, len(rows))
		for i, row := range rows {
			events[i] = row.event
		}

		if err := sem.Acquire(groupCtx, 1); err != nil {
			return err
		}
		group.Go(func() error {
			defer sem.Release(1)

			inserted, err := s.eventRepo.BulkInsert(groupCtx, events)
			if err != nil {
				return fmt.Errorf("chunk %d: %w", index, err)
			}

			mu.Lock()
			counters.EventsInserted += inserted
			totalInserted := counters.EventsInserted
			mu.Unlock()

			s.logger.WithField("chunk", index).
				WithField("inserted", inserted).
				WithField("total_inserted", totalInserted).
				Info("Chunk loaded")
			return nil
		})
		return nil
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			_ = group.Wait()
			return counters, fmt.Errorf("failed to read row: %w", err)
		}

		counters.RowsRead++

		row, ok := parseRow(columns, record, s.cfg.InactivityThresholdMin)
		if !ok {
			counters.RowsDropped++
			continue
		}
		chunk = append(chunk, row)

		if len(chunk) >= s.cfg.ChunkSize {
			if err := flushChunk(chunk, chunkIndex); err != nil {
				_ = group.Wait()
				return counters, err
			}
			chunk = make([]*parsedRow, 0, s.cfg.ChunkSize)
			chunkIndex++
		}
	}

	if len(chunk) > 0 {
		if err := flushChunk(chunk, chunkIndex); err != nil {
			_ = group.Wait()
			return counters, err
		}
	}

	if err := group.Wait(); err != nil {
		return counters, err
	}

	s.logger.WithField("rows_read", counters.RowsRead).
		WithField("rows_dropped", counters.RowsDropped).
		WithField("events_inserted", counters.EventsInserted).
		WithField("operators_created", counters.OperatorsCreated).
		WithField("sessions_created", counters.SessionsCreated).
		Info("Import completed")

	return counters, nil
}

// parsedRow pairs an event with the session metadata the events table drops
type parsedRow struct {
	event     *domain.Event
	shiftName string
}

type chunkRefs struct {
	operators int
	sessions  int
}

// ensureChunkRefs creates the operators and sessions a chunk references
// before its events are written
func (s *LoaderService) ensureChunkRefs(ctx context.Context, rows []*parsedRow, shiftNameToID map[string]int) (chunkRefs, error) {
	var created chunkRefs

	operatorSet := make(map[string]struct{})
	for _, row := range rows {
		operatorSet[row.event.OperatorID] = struct{}{}
	}
	operatorIDs := make([]string, 0, len(operatorSet))
	for id := range operatorSet {
		operatorIDs = append(operatorIDs, id)
	}
	sort.Strings(operatorIDs)

	operatorsCreated, err := s.operatorRepo.EnsureExist(ctx, operatorIDs)
	if err != nil {
		return created, err
	}
	created.operators = operatorsCreated

	sessions, err := buildSessions(rows, shiftNameToID, s.cfg.InactivityThresholdMin)
	if err != nil {
		return created, err
	}

	sessionsCreated, err := s.sessionRepo.EnsureExist(ctx, sessions)
	if err != nil {
		return created, err
	}
	created.sessions = sessionsCreated

	return created, nil
}

// buildSessions groups chunk rows by session ID: first operator, first shift
// name, min and max timestamps
func buildSessions(rows []*parsedRow, shiftNameToID map[string]int, inactivityThresholdMin int) ([]*domain.Session, error) {
	byID := make(map[int64]*domain.Session)
	var order []int64
	unknownShifts := make(map[string]struct{})

	for _, row := range rows {
		event := row.event
		session, seen := byID[event.SessionID]
		if !seen {
			shiftID, ok := shiftNameToID[strings.ToUpper(strings.TrimSpace(row.shiftName))]
			if !ok {
				unknownShifts[row.shiftName] = struct{}{}
				continue
			}
			end := event.Timestamp
			byID[event.SessionID] = &domain.Session{
				SessionID:              event.SessionID,
				OperatorID:             event.OperatorID,
				ShiftID:                shiftID,
				SessionStart:           event.Timestamp,
				SessionEnd:             &end,
				InactivityThresholdMin: inactivityThresholdMin,
			}
			order = append(order, event.SessionID)
			continue
		}

		if event.Timestamp.Before(session.SessionStart) {
			session.SessionStart = event.Timestamp
		}
		if session.SessionEnd == nil || event.Timestamp.After(*session.SessionEnd) {
			end := event.Timestamp
			session.SessionEnd = &end
		}
	}

	if len(unknownShifts) > 0 {
		names := make([]string, 0, len(unknownShifts))
		for name := range unknownShifts {
			names = append(names, name)
		}
		sort.Strings(names)
		return nil, &domain.ErrUnknownShiftNames{Names: names}
	}

	sessions := make([]*domain.Session, 0, len(order))
	for _, id := range order {
		sessions = append(sessions, byID[id])
	}
	return sessions, nil
}

// parseHeader maps cleaned column names to their positions and verifies the
// required columns are all present
func parseHeader(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		cleaned := cleanHeaderCell(name)
		if cleaned == "" {
			continue
		}
		if canonical, ok := columnAliases[cleaned]; ok {
			cleaned = canonical
		}
		if _, dup := columns[cleaned]; !dup {
			columns[cleaned] = i
		}
	}

	var missing []string
	for _, required := range requiredColumns {
		if _, ok := columns[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("csv is missing required columns: %s", strings.Join(missing, ", "))
	}

	return columns, nil
}

// cleanHeaderCell strips the UTF-8 BOM and surrounding whitespace
func cleanHeaderCell(name string) string {
	name = strings.TrimPrefix(name, "\ufeff")
	return strings.TrimSpace(name)
}

// parseRow coerces one CSV record into an event. Rows missing a required
// value are reported as not ok and dropped by the caller.
func parseRow(columns map[string]int, record []string, inactivityThresholdMin int) (*parsedRow, bool) {
	get := func(column string) string {
		i, ok := columns[column]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}
	getTruncated := func(column string) string {
		value := get(column)
		if width, ok := truncationWidths[column]; ok && len(value) > width {
			value = value[:width]
		}
		return value
	}

	sessionID, err := strconv.ParseInt(get("Session_ID"), 10, 64)
	if err != nil || sessionID == 0 {
		return nil, false
	}

	operatorID := get("Operator_ID")
	if operatorID == "" {
		return nil, false
	}

	timestamp, ok := parseTimestamp(get("Timestamp"))
	if !ok {
		return nil, false
	}

	shiftName := get("Shift")
	if shiftName == "" {
		return nil, false
	}

	event := &domain.Event{
		SessionID:           sessionID,
		OperatorID:          operatorID,
		Timestamp:           timestamp,
		TimeInterval:        parseFloat(get("TimeInterval")),
		Address:             getTruncated("Address"),
		FunctionCode:        getTruncated("FunctionCode"),
		CommandResponse:     getTruncated("CommandResponse"),
		ControlMode:         getTruncated("ControlMode"),
		ControlScheme:       getTruncated("ControlScheme"),
		CRC:                 parseInt(get("CRC")),
		DataLength:          parseInt(get("DataLength")),
		InvalidFunctionCode: getTruncated("InvalidFunctionCode"),
		InvalidDataLength:   getTruncated("InvalidDataLength"),
		PumpState:           getTruncated("PumpState"),
		SolenoidState:       getTruncated("SolenoidState"),
		SetPoint:            parseFloat(get("SetPoint")),
		PipelinePSI:         parseFloat(get("PipelinePSI")),
		PIDCycleTime:        parseFloat(get("PIDCycleTime")),
		PIDDeadband:         parseFloat(get("PIDDeadband")),
		PIDGain:             parseFloat(get("PIDGain")),
		PIDRate:             parseFloat(get("PIDRate")),
		PIDReset:            parseFloat(get("PIDReset")),
		DeltaSetPoint:       parseFloat(get("deltaSetPoint")),
		DeltaPipelinePSI:    parseFloat(get("deltaPipelinePSI")),
		DeltaPIDCycleTime:   parseFloat(get("deltaPIDCycleTime")),
		DeltaPIDDeadband:    parseFloat(get("deltaPIDDeadband")),
		DeltaPIDGain:        parseFloat(get("deltaPIDGain")),
		DeltaPIDRate:        parseFloat(get("deltaPIDRate")),
		DeltaPIDReset:       parseFloat(get("deltaPIDReset")),
		Label:               getTruncated("Label"),
	}

	return &parsedRow{event: event, shiftName: shiftName}, true
}

func parseTimestamp(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// parseFloat is lenient: empty or malformed values become zero
func parseFloat(value string) float64 {
	if value == "" {
		return 0
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return f
}

// parseInt is lenient: empty or malformed values become zero, and float
// renderings of whole numbers are accepted
func parseInt(value string) int {
	if value == "" {
		return 0
	}
	if i, err := strconv.Atoi(value); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return int(f)
	}
	return 0
}
