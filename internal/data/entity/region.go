package entity

type Province struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Regencies []Regency `json:"regencies,omitempty"`
}

type Regency struct {
	ID         int        `json:"id" db:"id"`
	ProvinceID int        `json:"provinceId" db:"province_id"`
	Name       string     `json:"name" db:"name"`
	Province   *Province  `json:"province,omitempty"`
	Districts  []District `json:"districts,omitempty"`
}

type District struct {
	ID        int       `json:"id" db:"id"`
	RegencyID int       `json:"regencyId" db:"regency_id"`
	Name      string    `json:"name" db:"name"`
	Province  *Province `json:"province,omitempty"`
	Regency   *Regency  `json:"regency,omitempty"`
	Villages  []Village `json:"villages,omitempty"`
}

type Village struct {
	ID         int64     `json:"id" db:"id"`
	DistrictID int       `json:"districtId" db:"district_id"`
	Name       string    `json:"name" db:"name"`
	Province   *Province `json:"province,omitempty"`
	Regency    *Regency  `json:"regency,omitempty"`
	District   *District `json:"district,omitempty"`
}
