package app

import (
	"image"
	"image/color"

	"posture-monitor/internal/domain/entity"
	"posture-monitor/internal/domain/port"
)

var alertColor = color.RGBA{R: 255, A: 255}

// DrawAlerts выводит заголовок и список предупреждений в левом верхнем углу кадра.
func DrawAlerts(frame port.Annotator, alerts []entity.Alert) {
	if len(alerts) == 0 {
		return
	}

	frame.Text(entity.AlertBanner, image.Pt(10, 30), 1, alertColor, 2)
	for i, alert := range alerts {
		frame.Text(alert.String(), image.Pt(10, 70+i*30), 0.7, alertColor, 2)
	}
}
