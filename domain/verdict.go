package domain

type Verdict int

const (
	Safe Verdict = iota
	Unsafe
)

func (v Verdict) String() string {
	if v == Unsafe {
		return "unsafe"
	}
	return "safe"
}
