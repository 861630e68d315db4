// Package register keeps the session's risk records in submission order and
// publishes a fresh snapshot to subscribers after every accepted record.
package register

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rohankatakam/healthrisk/internal/errors"
	"github.com/rohankatakam/healthrisk/internal/logging"
	"github.com/rohankatakam/healthrisk/internal/models"
	"github.com/rohankatakam/healthrisk/internal/risk"
	"github.com/sirupsen/logrus"
)

// Listener receives the full snapshot after each accepted record
type Listener func(models.Snapshot)

type entry struct {
	id      string
	addedAt time.Time
	record  *risk.Record
}

// Register is an append-only, in-memory collection of validated records.
// It is not safe for concurrent use; one caller owns it for the session.
type Register struct {
	engine    *risk.Engine
	logger    *logrus.Logger
	entries   []entry
	listeners []Listener
	now       func() time.Time
}

// New creates an empty register scored by engine
func New(engine *risk.Engine, logger *logrus.Logger) *Register {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Register{
		engine: engine,
		logger: logger,
		now:    time.Now,
	}
}

// Subscribe registers a listener for published snapshots
func (reg *Register) Subscribe(l Listener) {
	reg.listeners = append(reg.listeners, l)
}

// Add validates r and appends it. An invalid record is rejected with a
// validation error and the register is left as it was; nothing is published.
func (reg *Register) Add(r *risk.Record) (models.Assessment, error) {
	if err := reg.check(r); err != nil {
		return models.Assessment{}, err
	}

	e := entry{
		id:      uuid.NewString(),
		addedAt: reg.now(),
		record:  r,
	}
	reg.entries = append(reg.entries, e)

	row := reg.assess(e)
	reg.logger.WithFields(logrus.Fields{
		"id":    row.ID,
		"rpn":   row.RiskPriorityNumber,
		"ale":   row.AnnualizedLossExpectancy,
		"level": row.Level,
	}).Debug("Added risk entry")

	reg.publish()
	return row, nil
}

// Replace swaps the record at index (0-based) for r, keeping the entry's ID
// and position. Like Add, an invalid record leaves the register untouched.
func (reg *Register) Replace(index int, r *risk.Record) (models.Assessment, error) {
	if index < 0 || index >= len(reg.entries) {
		return models.Assessment{}, errors.ValidationErrorf("no entry at position %d", index+1).
			WithContext("index", index)
	}
	if err := reg.check(r); err != nil {
		return models.Assessment{}, err
	}

	reg.entries[index].record = r
	row := reg.assess(reg.entries[index])
	reg.logger.WithFields(logrus.Fields{
		"id":  row.ID,
		"rpn": row.RiskPriorityNumber,
	}).Debug("Replaced risk entry")

	reg.publish()
	return row, nil
}

func (reg *Register) check(r *risk.Record) error {
	result := reg.engine.Validate(r)
	if !result.HasErrors() {
		return nil
	}
	threat := ""
	if r != nil {
		threat = r.Threat()
	}
	reg.logger.WithFields(logrus.Fields{
		"threat":  threat,
		"reasons": len(result.Errors),
	}).Warn("Rejected risk entry")
	return errors.ValidationError(result.Error()).WithContext("reasons", result.Errors)
}

// Len returns the number of accepted records
func (reg *Register) Len() int {
	return len(reg.entries)
}

// Records returns the accepted records in submission order.
// The records are shared: change them through their fallible setters or
// Update and then call Refresh, which refuses to publish an invalid entry.
func (reg *Register) Records() []*risk.Record {
	out := make([]*risk.Record, len(reg.entries))
	for i, e := range reg.entries {
		out[i] = e.record
	}
	return out
}

// Refresh revalidates every entry and republishes the current state, e.g.
// after a record was mutated. If any entry no longer passes validation
// nothing is published and the error names the first such position.
func (reg *Register) Refresh() error {
	for i, e := range reg.entries {
		if err := reg.check(e.record); err != nil {
			return errors.Wrap(err, errors.ErrorTypeValidation, errors.SeverityHigh,
				fmt.Sprintf("entry %d is no longer valid", i+1)).WithContext("id", e.id)
		}
	}
	reg.publish()
	return nil
}

// Snapshot builds the table rows and ALE chart series for every record
func (reg *Register) Snapshot() models.Snapshot {
	snap := models.Snapshot{
		Currency:    reg.engine.Currency(),
		Assessments: make([]models.Assessment, 0, len(reg.entries)),
		ALESeries:   make([]models.ChartPoint, 0, len(reg.entries)),
	}
	for _, e := range reg.entries {
		snap.Assessments = append(snap.Assessments, reg.assess(e))
	}
	snap.ALESeries = ChartSeries(snap.Assessments)
	return snap
}

// ChartSeries maps each row to a threat → ALE data point, in row order
func ChartSeries(rows []models.Assessment) []models.ChartPoint {
	points := make([]models.ChartPoint, 0, len(rows))
	for _, row := range rows {
		points = append(points, models.ChartPoint{
			Label: row.Threat,
			Value: row.AnnualizedLossExpectancy,
		})
	}
	return points
}

func (reg *Register) assess(e entry) models.Assessment {
	row := reg.engine.Assess(e.record)
	row.ID = e.id
	row.AddedAt = e.addedAt
	return row
}

func (reg *Register) publish() {
	if len(reg.listeners) == 0 {
		return
	}
	snap := reg.Snapshot()
	for _, l := range reg.listeners {
		l(snap)
	}
}
