package rison

// Visitor is the consumer callback surface a Decoder drives as it
// recognizes each Rison value kind-by-kind. It plays the role the
// reference crate's serde Visitor trait plays, generalized to Go:
// rather than a derive macro wiring an arbitrary user type to the
// deserializer, a caller hands the Decoder a concrete Visitor and gets
// called back once per value, on demand, without the whole input ever
// needing to be materialized into an intermediate tree.
//
// Decoder.DecodeAny is "self-describing": it commits to a kind only
// after a single byte of lookahead and calls exactly one of these
// methods. ValueVisitor (used by ParseValue and Unmarshal) is the
// built-in Visitor that reconstructs a *Value tree; callers needing a
// leaner pass (counting elements, projecting one field) can implement
// Visitor directly instead.
type Visitor interface {
	VisitNull() (any, error)
	VisitBool(v bool) (any, error)
	VisitNumber(v float64) (any, error)
	VisitString(v string) (any, error)
	VisitArray(elems *ArrayDecoder) (any, error)
	VisitObject(members *ObjectDecoder) (any, error)
}

// ValueVisitor is the default Visitor: it reconstructs a *Value tree
// from the decoded input, the way mcvoid-json's Parse always builds a
// *Value regardless of what the caller ultimately wants.
type ValueVisitor struct{}

func (ValueVisitor) VisitNull() (any, error) { return Null(), nil }

func (ValueVisitor) VisitBool(v bool) (any, error) { return Bool(v), nil }

func (ValueVisitor) VisitNumber(v float64) (any, error) { return Number(v), nil }

func (ValueVisitor) VisitString(v string) (any, error) { return String(v), nil }

func (vis ValueVisitor) VisitArray(elems *ArrayDecoder) (any, error) {
	out := Array()
	for {
		elem, ok, err := elems.Next(vis)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		out.arr = append(out.arr, elem.(*Value))
	}
	return out, nil
}

func (vis ValueVisitor) VisitObject(members *ObjectDecoder) (any, error) {
	out := Object()
	for {
		key, val, ok, err := members.Next(vis)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		out.Set(key, val.(*Value))
	}
	return out.Value(), nil
}
