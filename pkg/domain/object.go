package domain

// CustomObject identifies a domain object by type and name.
type CustomObject struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

// NewObject creates a typed object.
func NewObject(typ, name string) CustomObject {
	return CustomObject{Type: typ, Name: name}
}

// String returns "name:type".
func (o CustomObject) String() string {
	return o.Name + ":" + o.Type
}
