package services

import (
	"context"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"

	"github.com/Glory2TheLord/FitLogV1/utils"
)

// RekognitionService label-checks uploaded progress photos so a stray
// screenshot or food pic does not land in someone's photo timeline.
type RekognitionService struct {
	client *rekognition.Client
}

func NewRekognitionService() (*RekognitionService, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		return nil, err
	}
	return &RekognitionService{client: rekognition.NewFromConfig(cfg)}, nil
}

// ContainsPerson reports whether a person is detected in the base64
// data-URI image with reasonable confidence.
func (r *RekognitionService) ContainsPerson(base64Img string) (bool, error) {
	data, _, err := utils.DecodeBase64Image(base64Img)
	if err != nil {
		return false, err
	}

	out, err := r.client.DetectLabels(context.TODO(), &rekognition.DetectLabelsInput{
		Image:         &types.Image{Bytes: data},
		MaxLabels:     aws.Int32(10),
		MinConfidence: aws.Float32(75),
	})
	if err != nil {
		return false, err
	}

	for _, l := range out.Labels {
		if aws.ToString(l.Name) == "Person" {
			return true, nil
		}
	}
	return false, nil
}
