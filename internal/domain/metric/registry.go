package metric

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownObject возвращается, если модель ссылается на незарегистрированный объект.
var ErrUnknownObject = errors.New("unknown object")

// Func — функция метрики или потерь, на которую ссылается сериализованная модель.
type Func func(yTrue, yPred []float64) (float64, error)

// Registry сопоставляет имена пользовательских объектов модели с функциями.
type Registry map[string]Func

const (
	NameDiceCoef = "dice_coef"
	NameDiceLoss = "dice_loss"
)

// DefaultRegistry возвращает объекты, с которыми обучалась модель сегментации.
func DefaultRegistry() Registry {
	return Registry{
		NameDiceCoef: DiceCoef,
		NameDiceLoss: DiceLoss,
	}
}

// Lookup ищет функцию по имени.
func (r Registry) Lookup(name string) (Func, bool) {
	fn, ok := r[name]
	return fn, ok
}

// Missing возвращает имена, которых нет в реестре, в исходном порядке.
func (r Registry) Missing(names []string) []string {
	var missing []string
	for _, name := range names {
		if _, ok := r[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// Require проверяет, что все имена зарегистрированы.
func (r Registry) Require(names []string) error {
	if missing := r.Missing(names); len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrUnknownObject, strings.Join(missing, ", "))
	}
	return nil
}

// Names возвращает отсортированный список зарегистрированных имён.
func (r Registry) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
