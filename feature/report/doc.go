// Package report renders a classified reconcile result for humans.
//
// New assets are listed by title. Updated assets get a header with the
// changed fields and, for every condition group that differs, a table of the
// condition-level diff:
//
//	  A.ID │ 12 (compared to local)
//	 Title │ Green Hill
//	  Code │ Core
//	      │ Flag Type Size Value Cmp Type  Size Value Hits
//	 1  1 │      Mem  8bit   0x1  =  Value          1
//	 2  - │      Mem  8bit   0x2  =  Value          1
//	 +  2 │      Mem  8bit   0x2  =  Value          2
//
// Long groups are cut down to the changed conditions and their context lines.
// Colors are only emitted when the writer is a terminal.
package report
