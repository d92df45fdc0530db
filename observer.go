package dbfgrid

// Observer is notified of the changes made to the rows of a Model.
// Ranges are half-open: begin is included, end is not.
// Methods are called synchronously, after the change is applied.
type Observer interface {
	RowsAppended(begin, end int)
	RowsRemoved(begin, end int)
	CellChanged(row, column int)
}

// ObserverFuncs implements Observer with optional functions.
type ObserverFuncs struct {
	OnRowsAppended func(begin, end int)
	OnRowsRemoved  func(begin, end int)
	OnCellChanged  func(row, column int)
}

func (o ObserverFuncs) RowsAppended(begin, end int) {
	if o.OnRowsAppended != nil {
		o.OnRowsAppended(begin, end)
	}
}

func (o ObserverFuncs) RowsRemoved(begin, end int) {
	if o.OnRowsRemoved != nil {
		o.OnRowsRemoved(begin, end)
	}
}

func (o ObserverFuncs) CellChanged(row, column int) {
	if o.OnCellChanged != nil {
		o.OnCellChanged(row, column)
	}
}

// NopObserver ignores every notification.
type NopObserver struct{}

func (NopObserver) RowsAppended(begin, end int) {}
func (NopObserver) RowsRemoved(begin, end int)  {}
func (NopObserver) CellChanged(row, column int) {}
