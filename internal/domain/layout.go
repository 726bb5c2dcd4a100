package domain

// CalculateGraphLayout assigns visual lanes to every row in a single forward
// pass. Rows are processed in display order; the same input order always
// yields the same lane assignment.
//
// Lanes are slots that either hold the commit expected to occupy them next or
// are empty and reusable. A row's own lane is freed once the row is placed,
// and its parents claim lanes in listed order, preferring the just-freed lane
// so single-parent chains stay in one column.
func CalculateGraphLayout(rows []GraphRow) {
	if len(rows) == 0 {
		return
	}

	var lanes []*CommitId
	laneOf := make(map[CommitId]int)

	occupy := func(idx int, id CommitId) {
		c := id
		lanes[idx] = &c
		laneOf[id] = idx
	}
	firstEmpty := func() int {
		for i, l := range lanes {
			if l == nil {
				return i
			}
		}
		return -1
	}
	snapshot := func() []bool {
		s := make([]bool, len(lanes))
		for i, l := range lanes {
			s[i] = l != nil
		}
		return s
	}

	for i := range rows {
		row := &rows[i]
		id := row.CommitID

		lane, seen := laneOf[id]
		if !seen {
			// A head: first empty lane, or a new one on the right.
			if lane = firstEmpty(); lane < 0 {
				lanes = append(lanes, nil)
				lane = len(lanes) - 1
			}
			occupy(lane, id)
		}

		row.Visual.Column = lane
		row.Visual.ActiveLanes = snapshot()

		// The commit is consumed; its lane is free for a parent.
		lanes[lane] = nil
		delete(laneOf, id)

		parentCols := make([]int, 0, len(row.Parents))
		for _, parent := range row.Parents {
			pLane, ok := laneOf[parent]
			if !ok {
				switch {
				case lanes[lane] == nil:
					pLane = lane
				default:
					if pLane = firstEmpty(); pLane < 0 {
						lanes = append(lanes, nil)
						pLane = len(lanes) - 1
					}
				}
				occupy(pLane, parent)
			}
			parentCols = append(parentCols, pLane)
		}
		row.Visual.ParentColumns = parentCols

		row.Visual.ParentMin, row.Visual.ParentMax = lane, lane
		for _, c := range parentCols {
			if c < row.Visual.ParentMin {
				row.Visual.ParentMin = c
			}
			if c > row.Visual.ParentMax {
				row.Visual.ParentMax = c
			}
		}

		row.Visual.ConnectorLanes = snapshot()
	}
}
