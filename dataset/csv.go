package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"transit-delay-api/models"
)

// WriteCSV persists records with the schema header. Floats are written with
// two decimals so repeated runs of the seeded generator produce identical
// bytes.
func WriteCSV(path string, records []Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Columns); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.RouteID,
			r.WeatherCondition,
			r.EventType,
			strconv.Itoa(r.Hour),
			strconv.Itoa(r.DayOfWeek),
			strconv.FormatFloat(r.Temperature, 'f', 2, 64),
			strconv.FormatFloat(r.Precipitation, 'f', 2, 64),
			strconv.Itoa(r.EventAttendance),
			strconv.FormatFloat(r.DelayMinutes, 'f', 2, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// ReadCSV loads a labeled dataset. A missing file is a hard error with the
// path in the message so the caller can tell the operator what to generate.
func ReadCSV(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset %s not readable (run the generator first): %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header of %s: %w", path, err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	for _, name := range Columns {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("dataset %s missing column %q", path, name)
		}
	}

	var records []Record
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rec, err := parseRow(row, col)
		if err != nil {
			return nil, fmt.Errorf("dataset %s: %w", path, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseRow(row []string, col map[string]int) (Record, error) {
	hour, err := strconv.Atoi(row[col["Hour"]])
	if err != nil {
		return Record{}, fmt.Errorf("bad Hour %q", row[col["Hour"]])
	}
	day, err := strconv.Atoi(row[col["Day_OfWeek"]])
	if err != nil {
		return Record{}, fmt.Errorf("bad Day_OfWeek %q", row[col["Day_OfWeek"]])
	}
	temp, err := strconv.ParseFloat(row[col["Temperature"]], 64)
	if err != nil {
		return Record{}, fmt.Errorf("bad Temperature %q", row[col["Temperature"]])
	}
	precip, err := strconv.ParseFloat(row[col["Precipitation"]], 64)
	if err != nil {
		return Record{}, fmt.Errorf("bad Precipitation %q", row[col["Precipitation"]])
	}
	attendance, err := strconv.Atoi(row[col["Event_Attendance"]])
	if err != nil {
		return Record{}, fmt.Errorf("bad Event_Attendance %q", row[col["Event_Attendance"]])
	}
	delay, err := strconv.ParseFloat(row[col["Delay_Minutes"]], 64)
	if err != nil {
		return Record{}, fmt.Errorf("bad Delay_Minutes %q", row[col["Delay_Minutes"]])
	}

	return Record{
		TripFeatures: models.TripFeatures{
			RouteID:          row[col["Route_ID"]],
			WeatherCondition: row[col["Weather_Condition"]],
			EventType:        row[col["Event_Type"]],
			Hour:             hour,
			DayOfWeek:        day,
			Temperature:      temp,
			Precipitation:    precip,
			EventAttendance:  attendance,
		},
		DelayMinutes: delay,
	}, nil
}
