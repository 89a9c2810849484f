package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// processedHeader lists the columns of the cleaned export, source columns
// first, then the derived categories.
var processedHeader = []string{
	ColNCT, ColSex, ColPhases, ColConditions, ColCountry, ColGII,
	"Sex_Category", "Disease_Category", "Standardized_Phase", "GII_Category",
}

// WriteCSV writes the cleaned records with their derived categories.
// When withEligibility is set an Eligibility Criteria column is appended.
func WriteCSV(w io.Writer, records []Record, withEligibility bool) error {
	cw := csv.NewWriter(w)

	header := processedHeader
	if withEligibility {
		header = append(append([]string{}, processedHeader...), "Eligibility Criteria")
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, rec := range records {
		row := []string{
			rec.NCTID,
			rec.Sex,
			rec.Phases,
			rec.Conditions,
			rec.Country,
			strconv.FormatFloat(rec.GII, 'g', -1, 64),
			rec.SexCategory,
			rec.DiseaseCategory,
			rec.StandardizedPhase,
			rec.GIICategory,
		}
		if withEligibility {
			row = append(row, rec.Eligibility)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %s: %w", rec.NCTID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteFile writes the cleaned records to a CSV file.
func WriteFile(path string, records []Record, withEligibility bool) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := WriteCSV(f, records, withEligibility); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
