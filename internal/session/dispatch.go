package session

import (
	"fmt"

	"github.com/structboard/structboard/internal/document"
)

// dispatch applies one inbound message. The caller holds s.mu.
func (s *Session) dispatch(msg *Message) error {
	e := s.engine

	switch msg.Type {
	case TypePointerDown:
		p, err := decode[PointerPayload](msg.Payload)
		if err != nil {
			return err
		}
		e.PointerDown(document.Point{X: p.X, Y: p.Y}, p.Styles)
	case TypePointerMove:
		p, err := decode[PointerPayload](msg.Payload)
		if err != nil {
			return err
		}
		e.PointerMove(document.Point{X: p.X, Y: p.Y})
	case TypePointerUp:
		e.PointerUp()
	case TypePointerLeave:
		e.PointerLeave()
	case TypeWheel:
		p, err := decode[WheelPayload](msg.Payload)
		if err != nil {
			return err
		}
		e.Wheel(document.Point{X: p.X, Y: p.Y}, p.DeltaY)

	case TypeToolChange:
		p, err := decode[ToolPayload](msg.Payload)
		if err != nil {
			return err
		}
		if !p.Tool.Valid() {
			return fmt.Errorf("%w: unknown tool %q", ErrBadPayload, p.Tool)
		}
		e.ChangeTool(p.Tool)
	case TypeStylesSet:
		p, err := decode[StylesPayload](msg.Payload)
		if err != nil {
			return err
		}
		e.SetStyles(p.Styles)
	case TypeViewportSet:
		p, err := decode[ViewportPayload](msg.Payload)
		if err != nil {
			return err
		}
		if p.Width <= 0 || p.Height <= 0 {
			return fmt.Errorf("%w: viewport %vx%v", ErrBadPayload, p.Width, p.Height)
		}
		e.SetViewport(p.Width, p.Height)
		s.recorder.Resize(p.Width, p.Height)
	case TypeViewReset:
		e.ResetZoom()

	case TypeTextUpdate:
		p, err := decode[TextPayload](msg.Payload)
		if err != nil {
			return err
		}
		e.UpdateTextDraft(p.Text)
	case TypeTextCommit:
		e.CommitTextDraft()
	case TypeTextCancel:
		e.CancelTextDraft()

	case TypeStructureAdd:
		p, err := decode[StructurePayload](msg.Payload)
		if err != nil {
			return err
		}
		switch p.Kind {
		case document.TypeArray:
			e.AddArray(p.Values)
		case document.TypeLinkedList:
			e.AddLinkedList(p.Values)
		case document.TypeBinaryTree:
			e.AddBinaryTree(p.Values)
		default:
			return fmt.Errorf("%w: unknown structure %q", ErrBadPayload, p.Kind)
		}
	case TypeStructureValues:
		p, err := decode[ValuesPayload](msg.Payload)
		if err != nil {
			return err
		}
		e.UpdateDataStructureValues(p.Values)
	case TypeTreeUpdate:
		p, err := decode[TreeNodePayload](msg.Payload)
		if err != nil {
			return err
		}
		e.UpdateTreeNode(p.ElementID, p.NodeID, p.Value)
	case TypeTreeAddChild:
		p, err := decode[TreeNodePayload](msg.Payload)
		if err != nil {
			return err
		}
		e.AddTreeChild(p.ElementID, p.NodeID, p.Side, p.Value)
	case TypeTreeRemove:
		p, err := decode[TreeNodePayload](msg.Payload)
		if err != nil {
			return err
		}
		e.RemoveTreeNode(p.ElementID, p.NodeID, p.Promote)

	case TypeDeleteSelected:
		e.DeleteSelected()
	case TypeSceneClear:
		e.Clear()
	case TypeSceneSample:
		e.LoadElements(document.NewSampleScene())
	case TypeUndo:
		e.Undo()
	case TypeRedo:
		e.Redo()

	default:
		return fmt.Errorf("%w: %q", ErrUnknownMessage, msg.Type)
	}
	return nil
}
