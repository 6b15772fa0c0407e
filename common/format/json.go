package format

import "encoding/json"

func PrettyJson(obj interface{}) (string, error) {
	b, err := json.MarshalIndent(obj, "", "    ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}
