package availability

import "github.com/m04kA/SMC-RentalService/internal/engine/reservations"

// Resolver проверяет диапазон упорядоченной цепочкой правил.
// Первое сработавшее правило определяет вердикт; если не сработало ни одно - диапазон принят.
type Resolver struct {
	rules []Rule
}

// NewResolver создает резолвер. Без аргументов используется DefaultRules.
func NewResolver(rules ...Rule) *Resolver {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Resolver{rules: rules}
}

// With возвращает новый резолвер с дополнительными правилами в конце цепочки
func (r *Resolver) With(rules ...Rule) *Resolver {
	combined := make([]Rule, 0, len(r.rules)+len(rules))
	combined = append(combined, r.rules...)
	combined = append(combined, rules...)
	return &Resolver{rules: combined}
}

// Rules имена правил в порядке применения
func (r *Resolver) Rules() []string {
	names := make([]string, len(r.rules))
	for i, rule := range r.rules {
		names[i] = rule.Name()
	}
	return names
}

// Evaluate проверяет диапазон. Чистая функция: не изменяет ни индекс, ни Input.
func (r *Resolver) Evaluate(in Input) Verdict {
	if in.Index == nil {
		in.Index = reservations.Empty()
	}

	for _, rule := range r.rules {
		if verdict, rejected := rule.Check(in); rejected {
			return verdict
		}
	}

	return Verdict{
		Outcome:   OutcomeAccepted,
		StartJoin: in.AllowJoin && in.Index.IsLastDayOfReservation(in.Candidate.Start),
		EndJoin:   in.AllowJoin && in.Index.IsFirstDayOfReservation(in.Candidate.End),
	}
}
