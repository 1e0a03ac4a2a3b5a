package entity

// ROI — связная область на маске.
type ROI struct {
	X      int     // координата X левого верхнего угла
	Y      int     // координата Y левого верхнего угла
	Width  int     // ширина области в пикселях
	Height int     // высота области в пикселях
	Area   float64 // площадь контура в пикселях
}

// Center возвращает координаты центра области
func (r ROI) Center() (x, y int) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// ROIReport хранит итог измерения областей на маске.
type ROIReport struct {
	ImagePath   string
	ImageWidth  int
	ImageHeight int
	ROIs        []ROI
	TotalArea   float64
	Coverage    float64 // доля площади маски, занятая областями
}

// HasROIs сообщает, найдена ли хотя бы одна область.
func (r *ROIReport) HasROIs() bool {
	return r != nil && len(r.ROIs) > 0
}
