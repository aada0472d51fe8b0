/*
The reducer narrows a partial configuration before its full extensions get enumerated.
Core features and the ancestors of selected features are fixed to selected, and every
variation point which is already decided gets its remaining variants fixed to deselected.
This is a cheap preflight step which keeps the solver from enumerating every combination
a group permits when the group decision was already made.
*/
package reducer
