package db

import (
	"encoding/csv"
	"os"
	"strings"

	"gorm.io/gorm"
)

// LoadRoster reads player names from a CSV and inserts one player per row.
// Names are not deduplicated, matching the players table.
func LoadRoster(conn *gorm.DB, path string) ([]Player, error) {
	if conn == nil {
		return nil, nil
	}
	names, err := ReadRoster(path)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, nil
	}
	players := make([]Player, 0, len(names))
	for _, name := range names {
		players = append(players, Player{Name: name})
	}
	if err := conn.Create(&players).Error; err != nil {
		return nil, Classify(err)
	}
	return players, nil
}

// ReadRoster returns the names in a roster CSV. The first row is a header and
// the name is taken from the last column, so both "name" and "seed,name"
// layouts work.
func ReadRoster(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	var names []string
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if len(row) == 0 {
			continue
		}
		name := strings.TrimSpace(row[len(row)-1])
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}
