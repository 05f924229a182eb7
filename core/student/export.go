package student

import (
	"io"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "Sheet1"

var exportHeader = []interface{}{"RA", "Name", "Degree", "Class"}

// WriteXLSX writes views as a single sheet workbook, one student per row.
func WriteXLSX(w io.Writer, views []View) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cErr := f.Close(); cErr != nil && err == nil {
			err = errors.Wrap(cErr, "closing workbook")
		}
	}()

	if err = f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return errors.Wrap(err, "writing header")
	}
	for i, v := range views {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.Wrap(err, "computing cell name")
		}
		row := []interface{}{v.RA, v.Name, v.DegreeName, v.ClassName}
		if err = f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return errors.Wrapf(err, "writing student %d", v.ID)
		}
	}

	if err = f.Write(w); err != nil {
		return errors.Wrap(err, "writing workbook")
	}
	return nil
}
