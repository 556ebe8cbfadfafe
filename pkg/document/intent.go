package document

// IntentKind names a discrete input action.
type IntentKind int

const (
	IntentInsertChar IntentKind = iota
	IntentDeleteBackward
	IntentDeleteForward
	IntentMoveCursor
	IntentPageScroll
	IntentUndo
	IntentRedo
	IntentTab
	IntentNewline
	IntentExtendSelection
	IntentSelectAll
)

// Intent is one action delivered by the input layer.
type Intent struct {
	Kind      IntentKind
	Char      rune      // IntentInsertChar
	Direction Direction // IntentMoveCursor, IntentExtendSelection, IntentPageScroll
	Count     int       // as Direction; zero means one
}

// Result reports what an intent did.
type Result struct {
	// Edited is true when the text changed.
	Edited bool
	// Notice is a transient status message, such as "nothing to undo".
	Notice string
}

// Dispatch performs in.
func (d *Document) Dispatch(in Intent) Result {
	switch in.Kind {
	case IntentInsertChar:
		return Result{Edited: d.InsertText(string(in.Char))}
	case IntentNewline:
		return Result{Edited: d.InsertText("\n")}
	case IntentTab:
		return Result{Edited: d.InsertText(d.indent)}
	case IntentDeleteBackward:
		return Result{Edited: d.DeleteBackward()}
	case IntentDeleteForward:
		return Result{Edited: d.DeleteForward()}
	case IntentMoveCursor:
		d.MoveCursor(in.Direction, in.Count)
	case IntentExtendSelection:
		d.ExtendSelection(in.Direction, in.Count)
	case IntentSelectAll:
		d.SelectAll()
	case IntentPageScroll:
		d.PageScroll(in.Direction, in.Count)
	case IntentUndo:
		if !d.Undo() {
			return Result{Notice: "nothing to undo"}
		}
		return Result{Edited: true}
	case IntentRedo:
		if !d.Redo() {
			return Result{Notice: "nothing to redo"}
		}
		return Result{Edited: true}
	}

	return Result{}
}
