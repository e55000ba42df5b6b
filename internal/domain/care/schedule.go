package care

import (
	"time"

	"github.com/google/uuid"
)

// ScheduleHorizonDays es el horizonte fijo del calendario generado.
// Nota: es independiente de Medicine.DurationDays (comportamiento heredado
// de la app original; ver DESIGN.md).
const ScheduleHorizonDays = 10

// doseNamespace es el namespace UUIDv5 para derivar IDs de tomas.
// No cambiar: la identidad determinística de las tomas depende de él.
var doseNamespace = uuid.MustParse("9f2c1d6e-5b74-4a0a-8c3d-2e7f61b0c4a5")

// DoseID deriva el identificador de una toma a partir de
// (medicamento, fecha, slot). Es una función pura: regenerar el calendario
// para la misma combinación produce siempre el mismo ID.
func DoseID(medicineID, date, slot string) string {
	return uuid.NewSHA1(doseNamespace, []byte(medicineID+"|"+date+"|"+slot)).String()
}

// BuildSchedule genera las tomas de los próximos ScheduleHorizonDays días
// (hoy inclusive) para cada medicamento y cada slot declarado.
// No muta sus entradas. Orden de salida: medicamento (orden de entrada),
// luego día ascendente, luego slot en orden de declaración.
func BuildSchedule(meds []Medicine, today time.Time) []Dose {
	out := make([]Dose, 0, len(meds)*ScheduleHorizonDays)

	for _, m := range meds {
		for offset := 0; offset < ScheduleHorizonDays; offset++ {
			date := today.AddDate(0, 0, offset).Format(DateLayout)
			for _, slot := range m.Timings {
				out = append(out, Dose{
					ID:           DoseID(m.ID, date, slot),
					MedicineID:   m.ID,
					MedicineName: m.Name,
					Date:         date,
					Slot:         slot,
					Status:       DoseStatusPending,
				})
			}
		}
	}

	return out
}
