package overlay

// Dispatch delivers a platform event to the tree and reports whether an
// item consumed it.
//
// Motion and button presses pick the item under the pointer before the
// event is emitted; button releases are emitted first and picked after.
// Enter and leave only update the current item. Keys and scrolling go to
// the current or grabbing item.
func (c *Canvas) Dispatch(ev Event) bool {
	if c.router != nil {
		c.router.Snoop(ev)
	}
	switch ev.Type {
	case EventMotion, EventButtonPress:
		c.pickCurrent(ev)
		return c.emit(ev)
	case EventButtonRelease:
		handled := c.emit(ev)
		after := ev
		after.Mods &^= buttonModifier(ev.Button)
		c.pickCurrent(after)
		return handled
	case EventEnter, EventLeave:
		return c.pickCurrent(ev)
	default:
		return c.emit(ev)
	}
}

func buttonModifier(button int) Modifier {
	switch button {
	case 1:
		return ModButton1
	case 2:
		return ModButton2
	case 3:
		return ModButton3
	}
	return 0
}

// pickCurrent finds the item under the pointer of ev and, when it changed,
// sends Leave to the old current item and Enter to the new one. While a
// button is held the current item is kept, so a drag that leaves its item
// keeps receiving events.
func (c *Canvas) pickCurrent(ev Event) bool {
	if c.needUpdate {
		c.needUpdate = false
		c.root.Update(c.affine)
	}

	buttonDown := ev.Mods&modButtons != 0
	if !buttonDown {
		c.leftGrabbedItem = false
	}

	if ev.Type == EventMotion || ev.Type == EventButtonRelease {
		ev.Type = EventEnter
	}
	c.pickEvent = ev
	c.havePickEvent = true

	if c.inRepick {
		return false
	}

	var picked ItemID
	if ev.Type != EventLeave && c.root.Visible() {
		if hit := c.root.pick(ev.Pos, c.pickTolerance); hit != nil {
			picked = hit.ID()
		}
	}
	if c.items.get(c.current) == nil {
		c.current = ItemID{}
	}

	if picked == c.current && !c.leftGrabbedItem {
		return false
	}

	handled := false
	if picked != c.current && !c.current.IsZero() && !c.leftGrabbedItem {
		leave := ev
		leave.Type = EventLeave
		c.inRepick = true
		handled = c.emit(leave)
		c.inRepick = false
	}

	if picked != c.current && buttonDown {
		c.leftGrabbedItem = true
		return handled
	}

	c.leftGrabbedItem = false
	c.current = picked
	if !picked.IsZero() {
		enter := ev
		enter.Type = EventEnter
		handled = c.emit(enter)
	}
	return handled
}

// emit sends ev to the current item, or to the grabbing item when the
// current one is outside its subtree, and bubbles it to the ancestors until
// a handler consumes it. A grab filters events by its mask.
func (c *Canvas) emit(ev Event) bool {
	grabbed := c.GrabbedItem()
	if grabbed != nil && c.grabMask&ev.Type.mask() == 0 {
		return false
	}
	current := c.CurrentItem()
	if current == nil {
		return false
	}
	item := current
	if grabbed != nil && !current.IsDescendantOf(grabbed) {
		item = grabbed
	}
	for item != nil {
		if item.HandleEvent(ev) {
			return true
		}
		p := item.Parent()
		if p == nil {
			break
		}
		item = p
	}
	return false
}
