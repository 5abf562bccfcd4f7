package parse

func FtoC(f float64) float64 { return (f - 32) * 5 / 9 }
func CtoF(c float64) float64 { return c*9/5 + 32 }

func MphToKph(v float64) float64 { return v * 1.609344 }
func KphToMph(v float64) float64 { return v / 1.609344 }
func MsToKph(v float64) float64  { return v * 3.6 }
func KphToMs(v float64) float64  { return v / 3.6 }

func InToMm(v float64) float64 { return v * 25.4 }
func MmToIn(v float64) float64 { return v / 25.4 }

func InHgToHpa(v float64) float64 { return v * 33.8638866667 }
func HpaToInHg(v float64) float64 { return v / 33.8638866667 }

func MiToKm(v float64) float64 { return v * 1.609344 }
func KmToMi(v float64) float64 { return v / 1.609344 }

// Speed converts km/h to the speed unit of u.
func (u Units) Speed(kph float64) float64 {
	switch u {
	case US:
		return KphToMph(kph)
	case MetricWX:
		return KphToMs(kph)
	}
	return kph
}

// Rain converts mm to the rain unit of u.
func (u Units) Rain(mm float64) float64 {
	switch u {
	case US:
		return MmToIn(mm)
	case Metric:
		return mm / 10
	}
	return mm
}

// Temperature converts degC to the temperature unit of u.
func (u Units) Temperature(c float64) float64 {
	if u == US {
		return CtoF(c)
	}
	return c
}

// Pressure converts hPa to the pressure unit of u.
func (u Units) Pressure(hpa float64) float64 {
	if u == US {
		return HpaToInHg(hpa)
	}
	return hpa
}

// Distance converts km to the distance unit of u.
func (u Units) Distance(km float64) float64 {
	if u == US {
		return KmToMi(km)
	}
	return km
}
