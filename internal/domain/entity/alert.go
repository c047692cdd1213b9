package entity

// Alert короткое сообщение о нарушенном правиле осанки
type Alert string

const (
	AlertCenterHorizontally Alert = "Center your face horizontally"
	AlertCenterVertically   Alert = "Center your face vertically"
	AlertMoveCloser         Alert = "Move closer to camera"
	AlertMoveBack           Alert = "Move back from camera"
	AlertHeadTilt           Alert = "Keep your head straight"
)

// AlertBanner заголовок, который рисуется над списком предупреждений
const AlertBanner = "Posture Alert!"

// String возвращает текст предупреждения
func (a Alert) String() string {
	return string(a)
}

// AlertStrings переводит предупреждения в строки для вывода
func AlertStrings(alerts []Alert) []string {
	out := make([]string, len(alerts))
	for i, a := range alerts {
		out[i] = string(a)
	}
	return out
}
