// Package attribute converts sparse profile input into the ordered list of
// named attribute updates understood by the identity provider.
//
// Every present field is validated under its own field name before it is
// added, and a synthetic updated_at attribute (epoch milliseconds) always
// closes the set:
//
//	set, err := attribute.Build(attribute.Profile{Name: "Ann", Gender: "f"}, time.Now())
//	// set: name=Ann, gender=f, updated_at=1760616000000
//
// Keys form a closed enumeration; unknown input names never reach this
// package because request bodies are bound strictly.
package attribute
