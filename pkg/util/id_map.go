package util

// IDMap. interns strings (street names) into dense int ids.
type IDMap struct {
	StrToID map[string]int
	IDToStr map[int]string
}

func NewIdMap() IDMap {
	return IDMap{
		StrToID: make(map[string]int),
		IDToStr: make(map[int]string),
	}
}

func (m IDMap) GetID(s string) int {
	if id, ok := m.StrToID[s]; ok {
		return id
	}
	id := len(m.StrToID)
	m.StrToID[s] = id
	m.IDToStr[id] = s
	return id
}

func (m IDMap) GetStr(id int) string {
	return m.IDToStr[id]
}
