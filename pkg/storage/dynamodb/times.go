package dynamodb

import (
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// encodeTime renders an instant for condition and key expressions. Timestamps
// are stored as epoch seconds (the models' unixtime encoding), so DynamoDB
// compares them numerically. RFC3339 strings do not order correctly under
// DynamoDB's byte-wise string comparison once zone offsets or fractional
// digits vary.
func encodeTime(t time.Time) types.AttributeValue {
	return &types.AttributeValueMemberN{Value: strconv.FormatInt(t.Unix(), 10)}
}
