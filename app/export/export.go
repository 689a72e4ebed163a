// Package export writes the catalog and its rankings to an XLSX workbook.
package export

import (
	"context"
	"fmt"
	"io"

	catalogdomain "github.com/Black-And-White-Club/retro-arcade/app/modules/catalog/domain"
	leaderboarddomain "github.com/Black-And-White-Club/retro-arcade/app/modules/leaderboard/domain"
	"github.com/xuri/excelize/v2"
)

const (
	GamesSheet        = "Games"
	LeaderboardsSheet = "Leaderboards"
)

var (
	gamesHeader        = []interface{}{"ID", "Name", "Description", "Genre", "Year", "Players", "Game URL", "Thumbnail"}
	leaderboardsHeader = []interface{}{"Game ID", "Game", "Rank", "Medal", "Player", "Score"}
)

// GameSource lists the catalog. The catalog service satisfies it.
type GameSource interface {
	ListGames(ctx context.Context) ([]catalogdomain.Game, error)
}

// RankingSource returns a game's ranking. The leaderboard service satisfies it.
type RankingSource interface {
	GetLeaderboard(ctx context.Context, gameID catalogdomain.GameID) ([]leaderboarddomain.Entry, error)
}

// Exporter builds workbooks from the catalog and leaderboard services.
type Exporter struct {
	games    GameSource
	rankings RankingSource
}

func NewExporter(games GameSource, rankings RankingSource) *Exporter {
	return &Exporter{games: games, rankings: rankings}
}

// Write builds the workbook and writes it to w.
func (e *Exporter) Write(ctx context.Context, w io.Writer) error {
	f, err := e.build(ctx)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// SaveAs builds the workbook and saves it to path.
func (e *Exporter) SaveAs(ctx context.Context, path string) error {
	f, err := e.build(ctx)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook to %s: %w", path, err)
	}
	return nil
}

func (e *Exporter) build(ctx context.Context) (*excelize.File, error) {
	games, err := e.games.ListGames(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}

	f := excelize.NewFile()
	ok := false
	defer func() {
		if !ok {
			f.Close()
		}
	}()

	if err := f.SetSheetName(f.GetSheetName(0), GamesSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(LeaderboardsSheet); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	rows := make([][]interface{}, 0, len(games))
	for _, g := range games {
		rows = append(rows, []interface{}{int(g.ID), g.Name, g.Description, g.Genre, g.Year, g.Players, g.GameURL, g.Thumbnail})
	}
	if err := writeSheet(f, GamesSheet, gamesHeader, rows, headerStyle); err != nil {
		return nil, err
	}

	rows = rows[:0]
	for _, g := range games {
		entries, err := e.rankings.GetLeaderboard(ctx, g.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get leaderboard for game %d: %w", g.ID, err)
		}
		for _, entry := range entries {
			rows = append(rows, []interface{}{int(g.ID), g.Name, entry.Rank, leaderboarddomain.Medal(entry.Rank), entry.Player, entry.Score})
		}
	}
	if err := writeSheet(f, LeaderboardsSheet, leaderboardsHeader, rows, headerStyle); err != nil {
		return nil, err
	}

	if err := f.SetColWidth(GamesSheet, "B", "C", 36); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(LeaderboardsSheet, "B", "B", 24); err != nil {
		return nil, err
	}

	ok = true
	return f, nil
}

func writeSheet(f *excelize.File, sheet string, header []interface{}, rows [][]interface{}, headerStyle int) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", sheet, err)
	}
	if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
		return err
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+2, err)
		}
	}
	return nil
}
