package stockledger

import "sort"

// RefSet acumulador de referencias faltantes, deduplicado. Centraliza el
// patrón "la referencia colgante se omite y se reporta aparte" que comparten
// el libro de stock y el costeo, en vez de duplicarlo por componente.
type RefSet struct {
	seen map[string]struct{}
}

// Add registra un ID faltante (los duplicados se ignoran).
func (s *RefSet) Add(id string) {
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	s.seen[id] = struct{}{}
}

// IDs devuelve los IDs acumulados, ordenados para salida determinista.
func (s *RefSet) IDs() []string {
	if len(s.seen) == 0 {
		return nil
	}
	ids := make([]string, 0, len(s.seen))
	for id := range s.seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
