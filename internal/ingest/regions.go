package ingest

import (
	"strings"

	"github.com/Dan9191/trade-prices/internal/models"
)

// DefaultRegions is the ordered set of districts collected by a run
var DefaultRegions = []models.Region{
	{Name: "광주광역시 광산구", Code: "29200"},
	{Name: "세종특별자치시", Code: "36110"},
	{Name: "경기도 화성시", Code: "41590"},
	{Name: "경기도 평택시", Code: "41220"},
}

type district struct {
	name string
	code string
}

// province -> districts, in lookup order
var districtCodes = []struct {
	province  string
	districts []district
}{
	{"서울", []district{
		{"강남구", "11680"}, {"강동구", "11740"}, {"강북구", "11305"}, {"강서구", "11500"},
		{"관악구", "11620"}, {"광진구", "11215"}, {"구로구", "11530"}, {"금천구", "11545"},
		{"노원구", "11350"}, {"도봉구", "11320"}, {"동대문구", "11230"}, {"동작구", "11590"},
		{"마포구", "11440"}, {"서대문구", "11410"}, {"서초구", "11650"}, {"성동구", "11200"},
		{"성북구", "11290"}, {"송파구", "11710"}, {"양천구", "11470"}, {"영등포구", "11560"},
		{"용산구", "11170"}, {"은평구", "11380"}, {"종로구", "11110"}, {"중구", "11140"},
		{"중랑구", "11260"},
	}},
	{"인천", []district{
		{"계양구", "28245"}, {"남동구", "28200"}, {"동구", "28110"}, {"미추홀구", "28177"},
		{"부평구", "28237"}, {"서구", "28260"}, {"연수구", "28185"}, {"중구", "28140"},
		{"강화군", "28710"}, {"옹진군", "28720"},
	}},
	{"경기", []district{
		{"고양시", "41281"}, {"과천시", "41290"}, {"광명시", "41210"}, {"광주시", "41610"},
		{"구리시", "41310"}, {"군포시", "41410"}, {"김포시", "41570"}, {"남양주시", "41360"},
		{"동두천시", "41250"}, {"부천시", "41190"}, {"성남시", "41130"}, {"수원시", "41110"},
		{"시흥시", "41390"}, {"안산시", "41270"}, {"안성시", "41550"}, {"안양시", "41170"},
		{"양주시", "41630"}, {"여주시", "41670"}, {"오산시", "41370"}, {"용인시", "41460"},
		{"의왕시", "41430"}, {"의정부시", "41150"}, {"이천시", "41500"}, {"파주시", "41480"},
		{"평택시", "41220"}, {"포천시", "41650"}, {"하남시", "41450"}, {"화성시", "41590"},
	}},
	{"광주", []district{{"광산구", "29200"}}},
	{"세종", []district{{"세종", "36110"}}},
	{"전라북도", []district{{"김제시", "45210"}}},
	{"전북", []district{{"김제시", "45210"}}},
}

// CodeFor resolves a free-form address such as "경기 화성시 동탄" to a
// district code. The province must appear in the address before its
// districts are considered.
func CodeFor(location string) (string, bool) {
	for _, p := range districtCodes {
		if !strings.Contains(location, p.province) {
			continue
		}
		for _, d := range p.districts {
			if strings.Contains(location, d.name) {
				return d.code, true
			}
		}
	}
	return "", false
}
