package entity

// Sample — пара путей: изображение и его эталонная маска.
type Sample struct {
	ImagePath string
	MaskPath  string
}

// Split — три непересекающиеся выборки.
type Split struct {
	Train []Sample
	Valid []Sample
	Test  []Sample
}
