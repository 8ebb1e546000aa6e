package wheel_repo

import (
	"context"
	"errors"
	"fmt"
	"fortune_wheel/internal/model"
	"fortune_wheel/internal/repository"
	"time"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	jsoniter "github.com/json-iterator/go"
)

const (
	wheelsTable   = "wheels"
	colID         = "id"
	colTitle      = "title"
	colWinner     = "winner"
	colDurationNS = "duration_ns"
	colDirection  = "direction"
	colEasing     = "easing"
	colShuffled   = "shuffled"
	colStyle      = "style"
	colCreatedAt  = "created_at"

	rewardsTable = "wheel_rewards"
	colWheelID   = "wheel_id"
	colPosition  = "position"
	colValue     = "value"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// style is the jsonb payload of the cosmetic settings.
type style struct {
	Colors          []string `json:"colors,omitempty"`
	TextColors      []string `json:"text_colors,omitempty"`
	Width           float64  `json:"width,omitempty"`
	Height          float64  `json:"height,omitempty"`
	InnerRadius     float64  `json:"inner_radius,omitempty"`
	OuterRadius     float64  `json:"outer_radius,omitempty"`
	PadAngle        float64  `json:"pad_angle,omitempty"`
	KnobSize        float64  `json:"knob_size,omitempty"`
	KnobSource      string   `json:"knob_source,omitempty"`
	BorderWidth     float64  `json:"border_width,omitempty"`
	BorderColor     string   `json:"border_color,omitempty"`
	BackgroundColor string   `json:"background_color,omitempty"`
	FontSize        float64  `json:"font_size,omitempty"`
	FontWeight      string   `json:"font_weight,omitempty"`
	TextOrientation string   `json:"text_orientation,omitempty"`
}

type repo struct {
	dbc       *pgxpool.Pool
	getter    *trmpgx.CtxGetter
	txManager trm.Manager
}

func NewWheelRepository(dbc *pgxpool.Pool, txManager trm.Manager) repository.WheelRepository {
	return &repo{
		dbc:       dbc,
		getter:    trmpgx.DefaultCtxGetter,
		txManager: txManager,
	}
}

// CreateWheel inserts the wheel row and its rewards in one transaction.
func (r *repo) CreateWheel(ctx context.Context, w *model.Wheel) error {
	st, err := json.Marshal(toStyle(w.Settings))
	if err != nil {
		return fmt.Errorf("marshal style: %w", err)
	}

	return r.txManager.Do(ctx, func(txCtx context.Context) error {
		db := r.getter.DefaultTrOrDB(txCtx, r.dbc)

		query := sq.Insert(wheelsTable).
			Columns(colID, colTitle, colWinner, colDurationNS, colDirection, colEasing, colShuffled, colStyle, colCreatedAt).
			Values(w.ID, w.Settings.Title, w.Settings.Winner, durationToDB(w.Settings.Duration),
				w.Settings.Direction, w.Settings.Easing, w.Shuffled, st, w.CreatedAt).
			PlaceholderFormat(sq.Dollar)

		sqlStr, args, err := query.ToSql()
		if err != nil {
			return err
		}
		if _, err = db.Exec(txCtx, sqlStr, args...); err != nil {
			return err
		}

		rewards := sq.Insert(rewardsTable).
			Columns(colWheelID, colPosition, colValue).
			PlaceholderFormat(sq.Dollar)
		for i, v := range w.Settings.Rewards {
			rewards = rewards.Values(w.ID, i, v)
		}

		sqlStr, args, err = rewards.ToSql()
		if err != nil {
			return err
		}
		_, err = db.Exec(txCtx, sqlStr, args...)
		return err
	})
}

// GetWheel loads a wheel with its rewards in stored order.
func (r *repo) GetWheel(ctx context.Context, id uuid.UUID) (*model.Wheel, error) {
	query := sq.Select(colTitle, colWinner, colDurationNS, colDirection, colEasing, colShuffled, colStyle, colCreatedAt).
		From(wheelsTable).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var (
		w          = model.Wheel{ID: id}
		durationNS int64
		rawStyle   []byte
	)
	err = r.dbc.QueryRow(ctx, sqlStr, args...).Scan(
		&w.Settings.Title, &w.Settings.Winner, &durationNS, &w.Settings.Direction,
		&w.Settings.Easing, &w.Shuffled, &rawStyle, &w.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	w.Settings.Duration = durationFromDB(durationNS)

	var st style
	if err := json.Unmarshal(rawStyle, &st); err != nil {
		return nil, fmt.Errorf("unmarshal style: %w", err)
	}
	applyStyle(&w.Settings, st)

	rewards := sq.Select(colValue).
		From(rewardsTable).
		Where(sq.Eq{colWheelID: id}).
		OrderBy(colPosition).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err = rewards.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.dbc.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	w.Settings.Rewards, err = pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, err
	}

	return &w, nil
}

// DeleteWheel removes the wheel. Rewards go with it through ON DELETE CASCADE.
func (r *repo) DeleteWheel(ctx context.Context, id uuid.UUID) error {
	query := sq.Delete(wheelsTable).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	res, err := r.dbc.Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func toStyle(s model.WheelSettings) style {
	return style{
		Colors:          s.Colors,
		TextColors:      s.TextColors,
		Width:           s.Width,
		Height:          s.Height,
		InnerRadius:     s.InnerRadius,
		OuterRadius:     s.OuterRadius,
		PadAngle:        s.PadAngle,
		KnobSize:        s.KnobSize,
		KnobSource:      s.KnobSource,
		BorderWidth:     s.BorderWidth,
		BorderColor:     s.BorderColor,
		BackgroundColor: s.BackgroundColor,
		FontSize:        s.FontSize,
		FontWeight:      s.FontWeight,
		TextOrientation: s.TextOrientation,
	}
}

func applyStyle(s *model.WheelSettings, st style) {
	s.Colors = st.Colors
	s.TextColors = st.TextColors
	s.Width = st.Width
	s.Height = st.Height
	s.InnerRadius = st.InnerRadius
	s.OuterRadius = st.OuterRadius
	s.PadAngle = st.PadAngle
	s.KnobSize = st.KnobSize
	s.KnobSource = st.KnobSource
	s.BorderWidth = st.BorderWidth
	s.BorderColor = st.BorderColor
	s.BackgroundColor = st.BackgroundColor
	s.FontSize = st.FontSize
	s.FontWeight = st.FontWeight
	s.TextOrientation = st.TextOrientation
}

// Durations are stored as nanoseconds so any value survives a round trip.
func durationToDB(d time.Duration) int64 {
	return d.Nanoseconds()
}

func durationFromDB(ns int64) time.Duration {
	return time.Duration(ns)
}
