package helper

import (
	"errors"
	"maps"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
	"unsafe"

	"github.com/govalues/decimal"
	"github.com/roysitumorang/kilau/models"
	"github.com/vishal-bihani/go-tsid"
)

var (
	timeZone *time.Location
	env,
	nsqAddress string
	InitHelper = sync.OnceValue(func() (err error) {
		location, ok := os.LookupEnv("TIME_ZONE")
		if !ok || location == "" {
			return errors.New("env TIME_ZONE is required")
		}
		if timeZone, err = time.LoadLocation(location); err != nil {
			return
		}
		if env, ok = os.LookupEnv("ENV"); !ok {
			return errors.New("env ENV is required")
		}
		if env == "" {
			env = "development"
		}
		if nsqAddress, ok = os.LookupEnv("NSQ_ADDRESS"); !ok || nsqAddress == "" {
			err = errors.New("env NSQ_ADDRESS is required")
		}
		return
	})
)

func String2ByteSlice(str string) []byte {
	return unsafe.Slice(unsafe.StringData(str), len(str))
}

func ByteSlice2String(bs []byte) string {
	return *(*string)(unsafe.Pointer(&bs))
}

// GenerateUniqueID returns the numeric TSID used as physical key and its
// lowercase string form exposed as public id.
func GenerateUniqueID() (int64, string) {
	id := tsid.Fast()
	return id.ToNumber(), id.ToLowerCase()
}

func LoadTimeZone() *time.Location {
	if timeZone == nil {
		return time.Local
	}
	return timeZone
}

func GetEnv() string {
	return env
}

func GetNsqAddress() string {
	return nsqAddress
}

// CountPages returns ceil(total / limit), or 1 when limit is unset.
func CountPages(total, limit int64) (int64, error) {
	if limit <= 0 {
		return 1, nil
	}
	totalDecimal, err := decimal.New(total, 0)
	if err != nil {
		return 0, err
	}
	perPageDecimal, err := decimal.New(limit, 0)
	if err != nil {
		return 0, err
	}
	pagesDecimal, err := totalDecimal.Quo(perPageDecimal)
	if err != nil {
		return 0, err
	}
	pages, _, ok := pagesDecimal.Ceil(0).Int64(0)
	if !ok {
		return 0, errors.New("pages: out of range")
	}
	return pages, nil
}

func SetPagination(total, pages, limit, page int64, baseURL string, urlValues url.Values) (*models.Pagination, error) {
	var response models.Pagination
	response.Info.Total = total
	response.Info.Pages = pages
	response.Info.Limit = limit
	link := func(page int64) (string, error) {
		u := maps.Clone(urlValues)
		if u == nil {
			u = url.Values{}
		}
		if page > 1 {
			u.Set("page", strconv.FormatInt(page, 10))
		} else {
			u.Del("page")
		}
		if len(u) == 0 {
			return baseURL, nil
		}
		queryString, err := url.QueryUnescape(u.Encode())
		if err != nil {
			return "", err
		}
		var builder strings.Builder
		_, _ = builder.WriteString(baseURL)
		_, _ = builder.WriteString("?")
		_, _ = builder.WriteString(queryString)
		return builder.String(), nil
	}
	var err error
	if response.Links.First, err = link(1); err != nil {
		return nil, err
	}
	if response.Links.Current, err = link(page); err != nil {
		return nil, err
	}
	if page < pages {
		if response.Links.Next, err = link(page + 1); err != nil {
			return nil, err
		}
	}
	if page > 1 {
		if response.Links.Previous, err = link(page - 1); err != nil {
			return nil, err
		}
	}
	return &response, nil
}
